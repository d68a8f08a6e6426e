package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/config"
	"github.com/studydesk/studydesk/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init [NAME]",
	Short: "Create a new studydesk directory",
	Long: `Creates a studydesk/ directory in the current working directory (or at
--dir) with a default config. The directory holds the config file, the
stored collections, and the activity log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("storage", "", "storage backend: files or sqlite (default files)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	name := "StudyDesk"
	if len(args) > 0 {
		name = args[0]
	}

	dir := flagDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		dir = filepath.Join(cwd, config.DefaultDir)
	}

	if _, err := config.Load(dir); err == nil {
		return fmt.Errorf("studydesk directory already exists at %s", dir)
	}

	cfg, err := config.Init(dir, name)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("storage"); v != "" {
		cfg.Storage = v
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":  "initialized",
			"dir":     cfg.Dir(),
			"name":    cfg.Name,
			"storage": cfg.Storage,
		})
	}

	output.Messagef(os.Stdout, "Initialized studydesk directory at %s", cfg.Dir())
	output.Messagef(os.Stdout, "  Name: %s | Storage: %s", cfg.Name, cfg.Storage)
	return nil
}

package cmd

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/model"
	"github.com/studydesk/studydesk/internal/output"
	"github.com/studydesk/studydesk/internal/store"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Inspect recorded study sessions",
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded sessions, newest first",
	Args:    cobra.NoArgs,
	RunE:    runSessionList,
}

func init() {
	sessionListCmd.Flags().String("type", "", "filter by type: focus or break")
	sessionListCmd.Flags().Int("limit", 0, "show at most N sessions")

	sessionCmd.AddCommand(sessionListCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	_, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	sessions, err := store.Sessions(st)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("type"); v != "" {
		if err := model.ValidateSessionType(v); err != nil {
			return err
		}
		var filtered []model.Session
		for _, s := range sessions {
			if s.Type == v {
				filtered = append(filtered, s)
			}
		}
		sessions = filtered
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].End.After(sessions[j].End)
	})

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && limit < len(sessions) {
		sessions = sessions[:limit]
	}

	switch outputFormat() {
	case output.FormatJSON:
		if sessions == nil {
			sessions = []model.Session{}
		}
		return output.JSON(os.Stdout, sessions)
	case output.FormatCompact:
		output.SessionCompact(os.Stdout, sessions)
	default:
		output.SessionTable(os.Stdout, sessions)
	}
	return nil
}

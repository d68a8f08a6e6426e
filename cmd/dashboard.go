package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/tui"
	"github.com/studydesk/studydesk/internal/watcher"
)

func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	model := tui.NewDashboard(st, cfg.Dir(), cfg.Name)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startDashboardWatcher(ctx, model, p)

	_, err = p.Run()
	return err
}

func startDashboardWatcher(ctx context.Context, model *tui.Dashboard, p *tea.Program) {
	w, err := watcher.New(model.WatchPaths(), func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: the board works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"boxbreath/internal/session"
	"boxbreath/internal/timer"
)

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

func historyCmd(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded breathing sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveHistoryPath(*flags)
			if err != nil {
				return err
			}
			if path == "" {
				return fmt.Errorf("history is disabled")
			}

			repo, err := session.Open(path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer repo.Close()

			return printHistory(cmd.OutOrStdout(), repo, limit, time.Now())
		},
	}

	cmd.Flags().StringVar(&flags.historyPath, "history", "", "session history database (default: user config dir)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of sessions to show, 0 for all")
	return cmd
}

func printHistory(w io.Writer, repo *session.Repository, limit int, now time.Time) error {
	sessions, err := repo.Recent(limit)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return nil
	}

	totals, err := repo.Totals()
	if err != nil {
		return fmt.Errorf("load totals: %w", err)
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf(
		"%d sessions, %d cycles, %s total",
		totals.Sessions, totals.Cycles, timer.Format(totals.Duration),
	)))
	for _, s := range sessions {
		fmt.Fprintf(w, "%-16s %s %4d cycles  %s\n",
			humanize.RelTime(s.EndedAt, now, "ago", "from now"),
			timer.Format(s.Duration),
			s.Cycles,
			s.Pattern(),
		)
	}
	return nil
}

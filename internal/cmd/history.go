package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/advisor/internal/history"
)

// NewHistoryCommand creates the history command group.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded pipeline runs",
		RunE:  runHistoryList,
	}

	cmd.Flags().String("kind", "", "Filter by pipeline kind: financial, product, research")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to show")

	cmd.AddCommand(newHistoryPruneCommand())

	return cmd
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	store, err := history.NewStore(a.cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")

	runs, err := store.Recent(cmd.Context(), kind, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-20s  %-10s  %-7s  %-9s  %s\n", "STARTED", "KIND", "STATUS", "DURATION", "REPORT")
	for _, run := range runs {
		status := "ok"
		if !run.Success {
			status = "failed"
		}
		report := run.ReportPath
		if report == "" {
			report = "-"
		}
		fmt.Fprintf(w, "%-20s  %-10s  %-7s  %-9s  %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Kind,
			status,
			run.Duration.Round(time.Second),
			report,
		)
		if !run.Success && run.Error != "" {
			fmt.Fprintf(w, "    %s\n", run.Error)
		}
	}
	return nil
}

func newHistoryPruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			store, err := history.NewStore(a.cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			days, _ := cmd.Flags().GetInt("days")
			cutoff := time.Now().AddDate(0, 0, -days)
			removed, err := store.Prune(cmd.Context(), cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s) older than %d days.\n", removed, days)
			return nil
		},
	}

	cmd.Flags().Int("days", 90, "Delete runs older than this many days")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd assembles the notifier command tree.
func RootCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifier",
		Short: "Cubicle reservation notification service",
		Long: `Aggregates cubicle reservation activity into per-user summaries and
delivers them over email, Slack and the task tracker, with an audit record
for every attempt.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		ServeCmd(app),
		NotifyUserCmd(app),
		NotifyAllCmd(app),
		BroadcastCmd(app),
		HistoryCmd(app),
	)
	return cmd
}

package commands

import (
	"fmt"

	"cubicle_notifier/internal/app"

	"github.com/spf13/cobra"
)

// NotifyAllCmd runs the full per-user bulk digest send.
func NotifyAllCmd(appCtx *AppContext) *cobra.Command {
	var initiator string

	cmd := &cobra.Command{
		Use:   "notify-all",
		Short: "Send reservation digests to every user with reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := appCtx.NotifService.NotifyAllUsers(cmd.Context(), initiator)
			if err != nil {
				return err
			}

			fmt.Printf("Run %s: %d users\n", result.RunID, result.TotalUsers)
			printRun("email", result.Email)
			printRun("slack", result.Slack)
			return nil
		},
	}
	cmd.Flags().StringVar(&initiator, "initiator", "", "id of the operator triggering the run")
	return cmd
}

func printOutcome(channel string, o app.ChannelOutcome) {
	switch {
	case !o.Attempted:
		fmt.Printf("  %s: not configured\n", channel)
	case o.Sent:
		fmt.Printf("  %s: sent\n", channel)
	default:
		fmt.Printf("  %s: failed (%s)\n", channel, o.Error)
	}
}

func printRun(channel string, r app.ChannelRunResult) {
	if !r.Configured {
		fmt.Printf("  %s: not configured\n", channel)
		return
	}
	fmt.Printf("  %s: %d sent, %d failed\n", channel, r.SentCount, len(r.Failed))
	for _, email := range r.Failed {
		fmt.Printf("    failed: %s\n", email)
	}
}

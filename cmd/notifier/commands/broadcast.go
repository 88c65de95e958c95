package commands

import (
	"fmt"

	"cubicle_notifier/internal/app"

	"github.com/spf13/cobra"
)

// BroadcastCmd fans a message out according to its type.
func BroadcastCmd(appCtx *AppContext) *cobra.Command {
	var message string
	var initiator string

	cmd := &cobra.Command{
		Use:   "broadcast <type>",
		Short: "Broadcast a notification (type: slack, email, cubicle_sequence, bulk)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := appCtx.NotifService.Broadcast(cmd.Context(), app.BroadcastType(args[0]), message, initiator)
			if err != nil {
				return err
			}

			fmt.Printf("Broadcast type: %s\n", result.Type)
			if result.Announcement != nil {
				printOutcome("announcement", *result.Announcement)
			}
			if result.CustomEmail != nil {
				printRun("custom email", *result.CustomEmail)
			}
			if result.Bulk != nil {
				fmt.Printf("Bulk run %s: %d users\n", result.Bulk.RunID, result.Bulk.TotalUsers)
				printRun("email", result.Bulk.Email)
				printRun("slack", result.Bulk.Slack)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "message body for slack/email/bulk broadcasts")
	cmd.Flags().StringVar(&initiator, "initiator", "", "id of the operator triggering the broadcast")
	return cmd
}

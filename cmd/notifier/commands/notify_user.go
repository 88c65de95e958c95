package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NotifyUserCmd sends one user's reservation digest.
func NotifyUserCmd(app *AppContext) *cobra.Command {
	var dateFilter string
	var initiator string

	cmd := &cobra.Command{
		Use:   "notify-user <user-id>",
		Short: "Send a reservation digest to a single user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.NotifService.NotifyUser(cmd.Context(), args[0], initiator, dateFilter)
			if err != nil {
				return err
			}

			fmt.Printf("User: %s <%s>\n", result.User.DisplayName, result.User.Email)
			printOutcome("email", result.Email)
			printOutcome("slack", result.Slack)
			if result.Success {
				fmt.Println("Result: delivered on at least one channel")
			} else {
				fmt.Println("Result: no channel delivered")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dateFilter, "date", "", "restrict the digest to one calendar day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&initiator, "initiator", "", "id of the operator triggering the send")
	return cmd
}

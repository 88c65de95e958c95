package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// HistoryCmd prints the most recent notification attempts from the audit log.
func HistoryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [count]",
		Short: "Show recent notification attempts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := 20
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("count must be a positive integer, got: %s", args[0])
				}
				limit = n
			}

			attempts, err := app.Audit.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(attempts) == 0 {
				fmt.Println("No notification attempts recorded.")
				return nil
			}

			for _, a := range attempts {
				line := fmt.Sprintf("%s  %-16s %-7s", a.CreatedAt.Format("2006-01-02 15:04:05"), a.Type, a.Status)
				if len(a.Recipients) > 0 {
					line += "  → " + strings.Join(a.Recipients, ", ")
				}
				if a.Error.Valid {
					line += "  [" + a.Error.String + "]"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	return cmd
}

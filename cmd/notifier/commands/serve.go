package commands

import (
	"os"
	"os/signal"
	"syscall"

	"cubicle_notifier/internal/infra/scheduler"

	"github.com/spf13/cobra"
)

// ServeCmd runs the scheduler daemon until interrupted.
func ServeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the notification scheduler daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			notifScheduler := scheduler.NewNotificationScheduler(
				app.NotifService,
				app.Logger,
				app.Cfg.CronSpecWeeklyDigest,
				app.Cfg.CronSpecUtilizationCheck,
			)
			notifScheduler.Start()

			app.Logger.Println("INFO: Notifier daemon running. Waiting for signals...")

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit // Block until a signal is received

			app.Logger.Println("INFO: Shutting down notifier daemon...")
			notifScheduler.Stop()
			app.Logger.Println("INFO: Notifier daemon shut down gracefully.")
			return nil
		},
	}
}

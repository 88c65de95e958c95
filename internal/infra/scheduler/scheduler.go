package scheduler

import (
	"context"
	"log"
	"time"

	"cubicle_notifier/internal/app"

	"github.com/robfig/cron/v3"
)

const schedulerInitiator = "scheduler"

// NotificationScheduler drives the recurring notification work: the weekly
// per-user digest run and the daily utilization check.
type NotificationScheduler struct {
	cronEngine               *cron.Cron
	notifService             *app.NotificationService
	logger                   *log.Logger
	cronSpecWeeklyDigest     string
	cronSpecUtilizationCheck string
}

func NewNotificationScheduler(
	notifService *app.NotificationService,
	logger *log.Logger,
	cronSpecWeeklyDigest string, // e.g., "0 9 * * 1" (9:00 AM on Mondays)
	cronSpecUtilizationCheck string, // e.g., "0 18 * * *" (6:00 PM daily)
) *NotificationScheduler {
	return &NotificationScheduler{
		cronEngine:               cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		notifService:             notifService,
		logger:                   logger,
		cronSpecWeeklyDigest:     cronSpecWeeklyDigest,
		cronSpecUtilizationCheck: cronSpecUtilizationCheck,
	}
}

func (s *NotificationScheduler) Start() {
	s.logger.Println("INFO: Starting notification scheduler...")

	// Weekly digest: full per-user bulk run across all configured channels.
	_, err := s.cronEngine.AddFunc(s.cronSpecWeeklyDigest, func() {
		s.logger.Println("INFO: Cron job triggered for weekly digest.")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()
		result, err := s.notifService.NotifyAllUsers(ctx, schedulerInitiator)
		if err != nil {
			s.logger.Printf("ERROR: Weekly digest run failed: %v", err)
			return
		}
		s.logger.Printf("INFO: Weekly digest run %s done: email %d/%d, slack %d/%d.",
			result.RunID, result.Email.SentCount, result.TotalUsers, result.Slack.SentCount, result.TotalUsers)
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add weekly digest cron job: %v", err)
	}

	// Daily utilization check: may open a tracker task per the threshold policy.
	_, err = s.cronEngine.AddFunc(s.cronSpecUtilizationCheck, func() {
		s.logger.Println("INFO: Cron job triggered for utilization check.")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		result, err := s.notifService.CheckUtilization(ctx, schedulerInitiator)
		if err != nil {
			s.logger.Printf("ERROR: Utilization check failed: %v", err)
			return
		}
		if result.TaskCreated {
			s.logger.Printf("INFO: Utilization check created task #%s (avg %.1f%%, peak %.1f%%).",
				result.ItemID, result.Report.AveragePct, result.Report.PeakPct)
		} else {
			s.logger.Printf("INFO: Utilization check done, no task needed (avg %.1f%%).", result.Report.AveragePct)
		}
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add utilization check cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Println("INFO: Notification scheduler started with jobs.")
}

func (s *NotificationScheduler) Stop() {
	s.logger.Println("INFO: Stopping notification scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Println("INFO: Notification scheduler gracefully stopped.")
}

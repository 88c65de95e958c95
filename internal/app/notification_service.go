// internal/app/notification_service.go
package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"cubicle_notifier/internal/domain/delivery"
	"cubicle_notifier/internal/domain/notification"
	"cubicle_notifier/internal/domain/user"

	"github.com/google/uuid"
)

// Custom application-level errors for the notification service. All of them
// are raised before any side effect occurs; once delivery starts, failures
// are folded into results instead.
var (
	ErrInvalidUserID        = fmt.Errorf("user id must be a non-empty string")
	ErrUserNotFound         = fmt.Errorf("no reservations found for user")
	ErrInvalidBroadcastType = fmt.Errorf("broadcast type must be one of: slack, email, cubicle_sequence, bulk")
)

// BroadcastType selects what a Broadcast call fans out to.
type BroadcastType string

const (
	BroadcastSlack           BroadcastType = "slack"
	BroadcastEmail           BroadcastType = "email"
	BroadcastCubicleSequence BroadcastType = "cubicle_sequence"
	BroadcastBulk            BroadcastType = "bulk"
)

// EmailSender is what the service needs from the email channel.
type EmailSender interface {
	delivery.Channel
	delivery.CustomSender
}

// SlackSender is what the service needs from the Slack channel.
type SlackSender interface {
	delivery.Channel
	delivery.Broadcaster
}

// TaskSender is what the service needs from the task-tracker channel.
type TaskSender interface {
	delivery.Channel
	delivery.TaskCreator
}

// ChannelOutcome reports one (user, channel) attempt.
type ChannelOutcome struct {
	Attempted bool // false when the channel was not configured
	Sent      bool
	Error     string
}

// UserNotificationResult is the outcome of NotifyUser across both channels.
type UserNotificationResult struct {
	User    user.Summary
	Date    string
	Email   ChannelOutcome
	Slack   ChannelOutcome
	Success bool // logical OR of the per-channel successes
}

// ChannelRunResult is the per-channel breakdown of a bulk run. Configured
// lets callers tell "nothing configured" apart from "configured but failed".
type ChannelRunResult struct {
	Configured bool
	SentCount  int
	Sent       []string
	Failed     []string
}

// BulkResult is the outcome of a NotifyAllUsers run.
type BulkResult struct {
	RunID      string
	TotalUsers int
	Email      ChannelRunResult
	Slack      ChannelRunResult
}

// BroadcastResult is the outcome of a Broadcast call; which fields are set
// depends on the broadcast type.
type BroadcastResult struct {
	Type         BroadcastType
	Announcement *ChannelOutcome   // slack, bulk
	CustomEmail  *ChannelRunResult // email
	Bulk         *BulkResult       // cubicle_sequence, bulk
}

// UtilizationResult is the outcome of a CheckUtilization run.
type UtilizationResult struct {
	Report      user.UtilizationReport
	TaskCreated bool
	ItemID      string
	FollowUps   ChannelRunResult
}

// NotificationService orchestrates delivery across the configured channels.
// Every attempt is isolated: one user's or one channel's failure never aborts
// sibling work, and every attempt is audited exactly once.
type NotificationService struct {
	stats       *UserStatsService
	email       EmailSender
	slack       SlackSender
	tasks       TaskSender
	audit       notification.Repository
	sendTimeout time.Duration
	logger      *log.Logger
}

func NewNotificationService(
	stats *UserStatsService,
	email EmailSender,
	slack SlackSender,
	tasks TaskSender,
	audit notification.Repository,
	sendTimeout time.Duration,
	logger *log.Logger,
) *NotificationService {
	return &NotificationService{
		stats:       stats,
		email:       email,
		slack:       slack,
		tasks:       tasks,
		audit:       audit,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

// NotifyUser sends one user's reservation digest over email and Slack
// independently. Unknown users yield ErrUserNotFound after a single overall
// error audit record; no per-channel records are written in that case.
func (s *NotificationService) NotifyUser(ctx context.Context, userID, initiator, dateFilter string) (*UserNotificationResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUserID
	}
	if dateFilter != "" {
		if _, err := ValidateDateFilter(dateFilter); err != nil {
			return nil, err
		}
	}

	summary, err := s.stats.AggregateOne(ctx, userID, dateFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats for user %s: %w", userID, err)
	}
	if summary == nil {
		s.logger.Printf("WARN: Individual notification requested for unknown user %s", userID)
		s.logAttempt(&notification.Attempt{
			Type:       notification.TypeIndividualEmail,
			Status:     notification.StatusError,
			Message:    "individual notification requested",
			Recipients: []string{},
			SentBy:     nullString(initiator),
			Error:      nullString(fmt.Sprintf("user %s has no reservations", userID)),
		})
		return nil, ErrUserNotFound
	}

	s.logger.Printf("INFO: Notifying user %s (%s), date filter %q", summary.UID, summary.Email, dateFilter)
	nctx := delivery.Context{Initiator: initiator, DateFilter: dateFilter}

	result := &UserNotificationResult{User: *summary, Date: dateFilter}
	result.Email = s.attempt(ctx, s.email, notification.TypeIndividualEmail, *summary, nctx, initiator, nil)
	result.Slack = s.attempt(ctx, s.slack, notification.TypeIndividualSlack, *summary, nctx, initiator, nil)
	result.Success = result.Email.Sent || result.Slack.Sent
	return result, nil
}

// NotifyAllUsers sends every user's digest over every configured channel.
// Each channel runs to completion past individual-recipient failures; sent
// counts report confirmed successes only.
func (s *NotificationService) NotifyAllUsers(ctx context.Context, initiator string) (*BulkResult, error) {
	summaries, err := s.stats.AggregateAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user stats: %w", err)
	}

	result := &BulkResult{RunID: uuid.NewString(), TotalUsers: len(summaries)}
	s.logger.Printf("INFO: Starting bulk notification run %s for %d users.", result.RunID, result.TotalUsers)

	nctx := delivery.Context{Initiator: initiator}
	result.Email = s.bulkRun(ctx, s.email, notification.TypeBulkEmail, summaries, nctx, result.RunID, initiator)
	result.Slack = s.bulkRun(ctx, s.slack, notification.TypeBulkSlack, summaries, nctx, result.RunID, initiator)

	s.logger.Printf("INFO: Bulk run %s finished: email %d/%d, slack %d/%d.",
		result.RunID, result.Email.SentCount, result.TotalUsers, result.Slack.SentCount, result.TotalUsers)
	return result, nil
}

// Broadcast fans a message out according to its type. An unknown type fails
// fast before any side effect; once delivery starts, partial failures are
// reported in the result and never escalated.
func (s *NotificationService) Broadcast(ctx context.Context, typ BroadcastType, message, initiator string) (*BroadcastResult, error) {
	switch typ {
	case BroadcastSlack, BroadcastEmail, BroadcastCubicleSequence, BroadcastBulk:
	default:
		return nil, ErrInvalidBroadcastType
	}

	result := &BroadcastResult{Type: typ}
	switch typ {
	case BroadcastSlack:
		outcome := s.announce(ctx, message, initiator)
		result.Announcement = &outcome
	case BroadcastEmail:
		run := s.customEmailRun(ctx, message, initiator)
		result.CustomEmail = &run
	case BroadcastCubicleSequence:
		bulk, err := s.NotifyAllUsers(ctx, initiator)
		if err != nil {
			return nil, err
		}
		result.Bulk = bulk
	case BroadcastBulk:
		outcome := s.announce(ctx, message, initiator)
		result.Announcement = &outcome
		bulk, err := s.NotifyAllUsers(ctx, initiator)
		if err != nil {
			return nil, err
		}
		result.Bulk = bulk
	}
	return result, nil
}

// CheckUtilization computes the utilization report and, when the policy
// warrants it, creates a tracker task. In the promotional (low usage) tier it
// additionally opens per-user follow-up items for users with fewer than 10
// reservations.
func (s *NotificationService) CheckUtilization(ctx context.Context, initiator string) (*UtilizationResult, error) {
	report, err := s.stats.UtilizationReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute utilization report: %w", err)
	}

	result := &UtilizationResult{Report: report}
	if !s.tasks.IsConfigured() {
		s.logger.Printf("INFO: Task tracker channel not configured. Skipping utilization task creation.")
		return result, nil
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	created, itemID, err := s.tasks.CreateTask(sendCtx, report)
	cancel()
	if err != nil {
		s.logger.Printf("ERROR: Failed to create utilization task: %v", err)
		s.logAttempt(&notification.Attempt{
			Type:       notification.TypeTaskCreated,
			Status:     notification.StatusError,
			Message:    "utilization review task",
			Recipients: []string{},
			SentBy:     nullString(initiator),
			Error:      nullString(err.Error()),
		})
		return result, nil
	}
	if !created {
		return result, nil
	}

	result.TaskCreated = true
	result.ItemID = itemID
	s.logAttempt(&notification.Attempt{
		Type:       notification.TypeTaskCreated,
		Status:     notification.StatusSuccess,
		Message:    fmt.Sprintf("utilization review task #%s created", itemID),
		Recipients: []string{},
		SentBy:     nullString(initiator),
		Data:       mustJSON(map[string]interface{}{"item_id": itemID, "average_pct": report.AveragePct, "peak_pct": report.PeakPct}),
	})

	// Promotional tier: low overall usage. Open follow-up items for the users
	// who barely reserve.
	if report.AveragePct < 25 && report.TotalReservations < 10 {
		result.FollowUps = s.followUpRun(ctx, initiator)
	}
	return result, nil
}

// --- internal helpers ---

// attempt performs one (user, channel) send, bounded by the send timeout, and
// records exactly one audit attempt for it. An unconfigured channel is
// skipped without an audit record.
func (s *NotificationService) attempt(
	ctx context.Context,
	ch delivery.Channel,
	typ notification.Type,
	u user.Summary,
	nctx delivery.Context,
	initiator string,
	data json.RawMessage,
) ChannelOutcome {
	if !ch.IsConfigured() {
		s.logger.Printf("INFO: %s channel not configured. Skipping send to %s.", ch.Name(), u.Email)
		return ChannelOutcome{}
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	err := ch.Send(sendCtx, u, nctx)
	cancel()

	att := &notification.Attempt{
		Type:       typ,
		Message:    fmt.Sprintf("reservation digest via %s", ch.Name()),
		Recipients: []string{u.Email},
		SentBy:     nullString(initiator),
		Data:       data,
	}
	outcome := ChannelOutcome{Attempted: true}
	if err != nil {
		s.logger.Printf("ERROR: %s delivery to %s failed: %v", ch.Name(), u.Email, err)
		att.Status = notification.StatusError
		att.Error = nullString(err.Error())
		outcome.Error = err.Error()
	} else {
		att.Status = notification.StatusSuccess
		outcome.Sent = true
	}
	s.logAttempt(att)
	return outcome
}

// bulkRun delivers to every user on one channel, isolating failures, and
// closes with a bulk summary audit record for the channel.
func (s *NotificationService) bulkRun(
	ctx context.Context,
	ch delivery.Channel,
	typ notification.Type,
	users []user.Summary,
	nctx delivery.Context,
	runID, initiator string,
) ChannelRunResult {
	res := ChannelRunResult{Sent: []string{}, Failed: []string{}}
	if !ch.IsConfigured() {
		s.logger.Printf("INFO: %s channel not configured. Skipping bulk run.", ch.Name())
		return res
	}
	res.Configured = true
	if len(users) == 0 {
		return res
	}

	runData := mustJSON(map[string]string{"run_id": runID})
	for _, u := range users {
		outcome := s.attempt(ctx, ch, typ, u, nctx, initiator, runData)
		if outcome.Sent {
			res.Sent = append(res.Sent, u.Email)
		} else {
			res.Failed = append(res.Failed, u.Email)
		}
	}
	res.SentCount = len(res.Sent)

	status := notification.StatusSuccess
	var errMsg sql.NullString
	if len(res.Failed) > 0 {
		status = notification.StatusError
		errMsg = nullString(fmt.Sprintf("%d of %d deliveries failed", len(res.Failed), len(users)))
	}
	s.logAttempt(&notification.Attempt{
		Type:       typ,
		Status:     status,
		Message:    fmt.Sprintf("bulk %s run delivered %d/%d", ch.Name(), res.SentCount, len(users)),
		Recipients: res.Sent,
		SentBy:     nullString(initiator),
		Error:      errMsg,
		Data: mustJSON(map[string]interface{}{
			"run_id":     runID,
			"sent_count": res.SentCount,
			"total":      len(users),
			"failed":     res.Failed,
		}),
	})
	return res
}

// announce posts a channel-wide Slack message.
func (s *NotificationService) announce(ctx context.Context, message, initiator string) ChannelOutcome {
	if !s.slack.IsConfigured() {
		s.logger.Printf("INFO: Slack channel not configured. Skipping announcement.")
		return ChannelOutcome{}
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	err := s.slack.Broadcast(sendCtx, message)
	cancel()

	att := &notification.Attempt{
		Type:       notification.TypeCustomSlack,
		Message:    message,
		Recipients: []string{},
		SentBy:     nullString(initiator),
	}
	outcome := ChannelOutcome{Attempted: true}
	if err != nil {
		s.logger.Printf("ERROR: Slack announcement failed: %v", err)
		att.Status = notification.StatusError
		att.Error = nullString(err.Error())
		outcome.Error = err.Error()
	} else {
		att.Status = notification.StatusSuccess
		outcome.Sent = true
	}
	s.logAttempt(att)
	return outcome
}

// customEmailRun sends an operator-supplied message to every user with
// reservations, one audit record per recipient.
func (s *NotificationService) customEmailRun(ctx context.Context, message, initiator string) ChannelRunResult {
	res := ChannelRunResult{Sent: []string{}, Failed: []string{}}
	if !s.email.IsConfigured() {
		s.logger.Printf("INFO: Email channel not configured. Skipping custom email run.")
		return res
	}
	res.Configured = true

	summaries, err := s.stats.AggregateAll(ctx)
	if err != nil {
		s.logger.Printf("ERROR: Failed to aggregate users for custom email run: %v", err)
		return res
	}

	for _, u := range summaries {
		sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		sendErr := s.email.SendCustom(sendCtx, u, message)
		cancel()

		att := &notification.Attempt{
			Type:       notification.TypeCustomEmail,
			Message:    message,
			Recipients: []string{u.Email},
			SentBy:     nullString(initiator),
		}
		if sendErr != nil {
			s.logger.Printf("ERROR: Custom email to %s failed: %v", u.Email, sendErr)
			att.Status = notification.StatusError
			att.Error = nullString(sendErr.Error())
			res.Failed = append(res.Failed, u.Email)
		} else {
			att.Status = notification.StatusSuccess
			res.Sent = append(res.Sent, u.Email)
		}
		s.logAttempt(att)
	}
	res.SentCount = len(res.Sent)
	return res
}

// followUpRun opens a tracker item per low-usage user, isolating failures.
func (s *NotificationService) followUpRun(ctx context.Context, initiator string) ChannelRunResult {
	res := ChannelRunResult{Configured: true, Sent: []string{}, Failed: []string{}}

	summaries, err := s.stats.AggregateAll(ctx)
	if err != nil {
		s.logger.Printf("ERROR: Failed to aggregate users for follow-up run: %v", err)
		return res
	}

	nctx := delivery.Context{Initiator: initiator}
	for _, u := range summaries {
		if u.TotalReservations >= 10 {
			continue
		}
		outcome := s.attempt(ctx, s.tasks, notification.TypeTaskCreated, u, nctx, initiator, nil)
		if outcome.Sent {
			res.Sent = append(res.Sent, u.Email)
		} else {
			res.Failed = append(res.Failed, u.Email)
		}
	}
	res.SentCount = len(res.Sent)
	return res
}

// logAttempt persists an audit record best-effort. The write runs on its own
// context so records for in-flight work still land after the caller's context
// is cancelled; a failed write is logged and never alters the delivery outcome.
func (s *NotificationService) logAttempt(att *notification.Attempt) {
	auditCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.audit.Insert(auditCtx, att); err != nil {
		s.logger.Printf("WARN: Failed to record notification attempt (type %s): %v", att.Type, err)
	}
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func mustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

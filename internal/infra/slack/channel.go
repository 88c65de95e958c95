// internal/infra/slack/channel.go
package slack

import (
	"context"
	"fmt"
	"log"

	"cubicle_notifier/internal/domain/delivery"
	"cubicle_notifier/internal/domain/user"
	"cubicle_notifier/internal/infra/config"

	slackapi "github.com/slack-go/slack"
)

// webhookPoster matches slackapi.PostWebhookContext, extracted so tests can
// capture payloads without a live webhook.
type webhookPoster func(ctx context.Context, url string, msg *slackapi.WebhookMessage) error

// ErrNotConfigured is returned when a send is attempted on a disabled channel,
// including one disabled because its webhook URL failed validation.
var ErrNotConfigured = fmt.Errorf("slack channel is not configured")

// Channel posts rich messages to a Slack incoming webhook. Configured iff
// notifications are globally enabled and the webhook URL validates; an
// invalid URL disables the channel rather than failing construction.
type Channel struct {
	cfg        *config.AppConfig
	post       webhookPoster
	configured bool
	logger     *log.Logger
}

func NewChannel(cfg *config.AppConfig, logger *log.Logger) *Channel {
	c := &Channel{cfg: cfg, post: slackapi.PostWebhookContext, logger: logger}
	if !cfg.NotificationsEnabled || cfg.SlackWebhookURL == "" {
		return c
	}
	if err := ValidateWebhookURL(cfg.SlackWebhookURL); err != nil {
		logger.Printf("WARN: Slack webhook URL rejected, channel disabled: %v", err)
		return c
	}
	c.configured = true
	return c
}

func (c *Channel) Name() string { return "slack" }

func (c *Channel) IsConfigured() bool { return c.configured }

// Send posts one user's reservation digest: a header block, a field grid with
// the usage statistics, and the cubicle sequence as a Markdown section.
func (c *Channel) Send(ctx context.Context, u user.Summary, nctx delivery.Context) error {
	if !c.configured {
		return ErrNotConfigured
	}

	title := fmt.Sprintf("Cubicle summary for %s", u.DisplayName)
	if nctx.DateFilter != "" {
		title = fmt.Sprintf("Cubicle summary for %s (%s)", u.DisplayName, nctx.DateFilter)
	}

	fields := []*slackapi.TextBlockObject{
		slackapi.NewTextBlockObject(slackapi.MarkdownType, fmt.Sprintf("*Total reservations:*\n%d", u.TotalReservations), false, false),
		slackapi.NewTextBlockObject(slackapi.MarkdownType, fmt.Sprintf("*Days active:*\n%d", u.DaysActive), false, false),
		slackapi.NewTextBlockObject(slackapi.MarkdownType, fmt.Sprintf("*Favorite section:*\n%s", u.FavoriteSection), false, false),
		slackapi.NewTextBlockObject(slackapi.MarkdownType, fmt.Sprintf("*Avg daily:*\n%.2f", u.AvgDailyReservations), false, false),
	}

	blocks := []slackapi.Block{
		slackapi.NewHeaderBlock(slackapi.NewTextBlockObject(slackapi.PlainTextType, title, false, false)),
		slackapi.NewSectionBlock(nil, fields, nil),
	}
	if u.CubicleSequence != "" {
		seq := slackapi.NewTextBlockObject(slackapi.MarkdownType, fmt.Sprintf("*Cubicles:* %s", u.CubicleSequence), false, false)
		blocks = append(blocks, slackapi.NewSectionBlock(seq, nil, nil))
	}

	msg := &slackapi.WebhookMessage{
		Text:   title,
		Blocks: &slackapi.Blocks{BlockSet: blocks},
	}
	if err := c.post(ctx, c.cfg.SlackWebhookURL, msg); err != nil {
		return fmt.Errorf("failed to post Slack message for %s: %w", u.Email, err)
	}
	return nil
}

// Broadcast posts a channel-wide announcement that is not tied to any user.
// Unlike Send it is also reached directly, as the task channel's announcer,
// so the configured guard lives here and not only in the orchestrator.
func (c *Channel) Broadcast(ctx context.Context, message string) error {
	if !c.configured {
		return ErrNotConfigured
	}

	msg := &slackapi.WebhookMessage{Text: message}
	if err := c.post(ctx, c.cfg.SlackWebhookURL, msg); err != nil {
		return fmt.Errorf("failed to post Slack broadcast: %w", err)
	}
	return nil
}

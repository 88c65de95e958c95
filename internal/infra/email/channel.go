// internal/infra/email/channel.go
package email

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cubicle_notifier/internal/domain/delivery"
	"cubicle_notifier/internal/domain/user"
	"cubicle_notifier/internal/infra/config"

	"gopkg.in/gomail.v2"
)

// smtpSender is the slice of gomail.Dialer we depend on, extracted so tests
// can substitute a fake transport.
type smtpSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Channel delivers per-user reservation digests over SMTP. Configured iff
// host, user and password are all present.
type Channel struct {
	cfg    *config.AppConfig
	sender smtpSender
	logger *log.Logger
}

func NewChannel(cfg *config.AppConfig, logger *log.Logger) *Channel {
	c := &Channel{cfg: cfg, logger: logger}
	if cfg.EmailConfigured() {
		c.sender = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return c
}

func (c *Channel) Name() string { return "email" }

func (c *Channel) IsConfigured() bool { return c.sender != nil }

// Send renders and dispatches the reservation digest for one user. Transport
// and auth failures are returned to the caller; the orchestrator decides
// whether to continue with other recipients.
func (c *Channel) Send(ctx context.Context, u user.Summary, nctx delivery.Context) error {
	subject := "Your cubicle reservation summary"
	if nctx.DateFilter != "" {
		subject = fmt.Sprintf("Your cubicle reservation summary for %s", nctx.DateFilter)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.cfg.EmailFrom)
	m.SetHeader("To", u.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", c.renderText(u))
	m.AddAlternative("text/html", c.renderHTML(u))

	return c.dispatch(ctx, u.Email, m)
}

// SendCustom delivers an operator-supplied announcement to one user.
func (c *Channel) SendCustom(ctx context.Context, u user.Summary, message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.cfg.EmailFrom)
	m.SetHeader("To", u.Email)
	m.SetHeader("Subject", "Cubicle reservations announcement")
	m.SetBody("text/plain", message)
	m.AddAlternative("text/html", fmt.Sprintf("<p>%s</p>", message))

	return c.dispatch(ctx, u.Email, m)
}

// dispatch runs the blocking SMTP exchange under the caller's context. gomail
// has no context support of its own, so the send is raced against ctx; on
// timeout the attempt is reported as failed even if the transport later
// completes.
func (c *Channel) dispatch(ctx context.Context, to string, m *gomail.Message) error {
	done := make(chan error, 1)
	go func() {
		done <- c.sender.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email send to %s aborted: %w", to, ctx.Err())
	}
}

func (c *Channel) renderText(u user.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", u.DisplayName)
	b.WriteString("Here is your cubicle reservation summary:\n\n")
	fmt.Fprintf(&b, "Total reservations: %d\n", u.TotalReservations)
	fmt.Fprintf(&b, "Days active: %d\n", u.DaysActive)
	fmt.Fprintf(&b, "Favorite section: %s\n", u.FavoriteSection)
	fmt.Fprintf(&b, "Average daily reservations: %.2f\n", u.AvgDailyReservations)
	if u.CubicleSequence != "" {
		fmt.Fprintf(&b, "Cubicles reserved: %s\n", u.CubicleSequence)
	}
	if !u.LastActivity.IsZero() {
		fmt.Fprintf(&b, "Last activity: %s\n", u.LastActivity.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "\nManage your reservations: %s\n", c.cfg.FrontendURL)
	return b.String()
}

func (c *Channel) renderHTML(u user.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Hi %s,</h2>", u.DisplayName)
	b.WriteString("<p>Here is your cubicle reservation summary:</p><ul>")
	fmt.Fprintf(&b, "<li><b>Total reservations:</b> %d</li>", u.TotalReservations)
	fmt.Fprintf(&b, "<li><b>Days active:</b> %d</li>", u.DaysActive)
	fmt.Fprintf(&b, "<li><b>Favorite section:</b> %s</li>", u.FavoriteSection)
	fmt.Fprintf(&b, "<li><b>Average daily reservations:</b> %.2f</li>", u.AvgDailyReservations)
	if u.CubicleSequence != "" {
		fmt.Fprintf(&b, "<li><b>Cubicles reserved:</b> %s</li>", u.CubicleSequence)
	}
	if !u.LastActivity.IsZero() {
		fmt.Fprintf(&b, "<li><b>Last activity:</b> %s</li>", u.LastActivity.Format("2006-01-02"))
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, `<p><a href="%s">Manage your reservations</a></p>`, c.cfg.FrontendURL)
	return b.String()
}

package email

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cubicle_notifier/internal/domain/delivery"
	"cubicle_notifier/internal/domain/user"
	"cubicle_notifier/internal/infra/config"

	"gopkg.in/gomail.v2"
)

// fakeSender records outgoing messages instead of dialing SMTP.
type fakeSender struct {
	messages []*gomail.Message
	err      error
	block    chan struct{} // when set, DialAndSend waits until closed
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, m...)
	return nil
}

func smtpConfig() *config.AppConfig {
	return &config.AppConfig{
		SMTPHost:     "smtp.corp.test",
		SMTPPort:     587,
		SMTPUser:     "notifier",
		SMTPPassword: "secret",
		EmailFrom:    "cubicles@corp.test",
		FrontendURL:  "https://cubicles.corp.test",
	}
}

func newTestChannel(sender *fakeSender) *Channel {
	c := NewChannel(smtpConfig(), log.New(io.Discard, "", 0))
	c.sender = sender
	return c
}

func annSummary() user.Summary {
	return user.Summary{
		UID:                  "u1",
		Email:                "ann@corp.test",
		DisplayName:          "Ann",
		TotalReservations:    4,
		DaysActive:           2,
		FavoriteSection:      "A",
		AvgDailyReservations: 2,
		CubicleSequence:      "2024-03-01: A1-SOC CUB1-A1-SOC CUB2",
		LastActivity:         time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewChannel_Configuration(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	c := NewChannel(smtpConfig(), logger)
	assert.True(t, c.IsConfigured())
	assert.Equal(t, "email", c.Name())

	cfg := smtpConfig()
	cfg.SMTPPassword = ""
	assert.False(t, NewChannel(cfg, logger).IsConfigured())
}

func TestChannel_Send(t *testing.T) {
	t.Run("builds a dual-body digest", func(t *testing.T) {
		sender := &fakeSender{}
		c := newTestChannel(sender)

		require.NoError(t, c.Send(context.Background(), annSummary(), delivery.Context{}))
		require.Len(t, sender.messages, 1)

		m := sender.messages[0]
		assert.Equal(t, []string{"cubicles@corp.test"}, m.GetHeader("From"))
		assert.Equal(t, []string{"ann@corp.test"}, m.GetHeader("To"))
		assert.Equal(t, []string{"Your cubicle reservation summary"}, m.GetHeader("Subject"))
	})

	t.Run("date filter appears in the subject", func(t *testing.T) {
		sender := &fakeSender{}
		c := newTestChannel(sender)

		require.NoError(t, c.Send(context.Background(), annSummary(), delivery.Context{DateFilter: "2024-03-01"}))
		assert.Equal(t, []string{"Your cubicle reservation summary for 2024-03-01"}, sender.messages[0].GetHeader("Subject"))
	})

	t.Run("transport errors are wrapped with the recipient", func(t *testing.T) {
		c := newTestChannel(&fakeSender{err: fmt.Errorf("535 authentication failed")})

		err := c.Send(context.Background(), annSummary(), delivery.Context{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ann@corp.test")
		assert.Contains(t, err.Error(), "535 authentication failed")
	})

	t.Run("context cancellation aborts a stuck send", func(t *testing.T) {
		block := make(chan struct{})
		defer close(block)
		c := newTestChannel(&fakeSender{block: block})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := c.Send(ctx, annSummary(), delivery.Context{})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestChannel_SendCustom(t *testing.T) {
	sender := &fakeSender{}
	c := newTestChannel(sender)

	require.NoError(t, c.SendCustom(context.Background(), annSummary(), "office closed friday"))
	require.Len(t, sender.messages, 1)
	assert.Equal(t, []string{"Cubicle reservations announcement"}, sender.messages[0].GetHeader("Subject"))
}

func TestRenderText(t *testing.T) {
	c := newTestChannel(&fakeSender{})
	body := c.renderText(annSummary())

	assert.Contains(t, body, "Hi Ann,")
	assert.Contains(t, body, "Total reservations: 4")
	assert.Contains(t, body, "Favorite section: A")
	assert.Contains(t, body, "Average daily reservations: 2.00")
	assert.Contains(t, body, "A1-SOC CUB1-A1-SOC CUB2")
	assert.Contains(t, body, "Last activity: 2024-03-02")
	assert.Contains(t, body, "https://cubicles.corp.test")
}

func TestRenderText_OmitsEmptySections(t *testing.T) {
	c := newTestChannel(&fakeSender{})
	bare := annSummary()
	bare.CubicleSequence = ""
	bare.LastActivity = time.Time{}
	body := c.renderText(bare)

	assert.NotContains(t, body, "Cubicles reserved")
	assert.NotContains(t, body, "Last activity")
}

package slack

import (
	"fmt"
	"net/url"
	"strings"
)

// allowedWebhookHost is the only host incoming webhooks may point at.
const allowedWebhookHost = "hooks.slack.com"

// ValidateWebhookURL checks that raw is a syntactically valid HTTPS incoming
// webhook URL on the allowed host. A failing URL does not raise at channel
// construction; it silently disables the channel.
func ValidateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("webhook URL is not parseable: %w", err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("webhook URL must use https, got %q", u.Scheme)
	}
	if u.Host != allowedWebhookHost {
		return fmt.Errorf("webhook URL host %q is not %s", u.Host, allowedWebhookHost)
	}
	if !strings.HasPrefix(u.Path, "/services/") {
		return fmt.Errorf("webhook URL path %q is not a /services/ endpoint", u.Path)
	}
	return nil
}

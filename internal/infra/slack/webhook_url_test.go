package slack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWebhookURL(t *testing.T) {
	t.Run("accepts slack webhook urls", func(t *testing.T) {
		assert.NoError(t, ValidateWebhookURL("https://hooks.slack.com/services/T000/B000/xyz"))
	})

	t.Run("rejects anything else", func(t *testing.T) {
		cases := map[string]string{
			"plain http":      "http://hooks.slack.com/services/T000/B000/xyz",
			"wrong host":      "https://hooks.evil.example/services/T000/B000/xyz",
			"wrong path":      "https://hooks.slack.com/api/chat.postMessage",
			"no path":         "https://hooks.slack.com",
			"not a url":       "://nope",
			"empty":           "",
			"subdomain trick": "https://hooks.slack.com.evil.example/services/T000",
		}
		for name, url := range cases {
			assert.Error(t, ValidateWebhookURL(url), "case %s: %q", name, url)
		}
	})
}

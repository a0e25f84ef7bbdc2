package discord

import (
	"errors"
	"time"
)

const (
	// WebhookBaseURL is the Discord webhook endpoint prefix.
	WebhookBaseURL = "https://discord.com/api/webhooks"
	// DefaultTimeout is the webhook request timeout.
	DefaultTimeout = 10 * time.Second
	// ColorError is the embed color for error messages.
	ColorError = 0xE74C3C
)

var errWebhookRequired = errors.New("discord webhook id and token are required")

// DefaultConfig returns the default Config.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		DefaultUsername: "widget-srv",
	}
}

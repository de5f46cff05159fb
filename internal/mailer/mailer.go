package mailer

import (
	"context"
	"fmt"

	"github.com/campusops/stockroom-backend/pkg/config"
	"github.com/go-resty/resty/v2"
)

// Message is one outbound notification email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Notifier delivers status-change emails. Delivery is always best-effort:
// callers log failures and never fail the workflow that triggered the send.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Client posts SendGrid-style JSON to the configured mail API.
type Client struct {
	http      *resty.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// New builds a mail client from configuration. Without an API key the
// client is disabled and Send becomes a no-op.
func New(cfg config.MailConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetAuthToken(cfg.APIKey)

	return &Client{
		http:      http,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		enabled:   cfg.Enabled(),
	}
}

type sendPayload struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send delivers one message. A non-2xx response is an error so callers can
// log it; it is never retried here.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.enabled {
		return nil
	}
	if msg.To == "" {
		return fmt.Errorf("mailer: recipient is required")
	}

	payload := sendPayload{
		Personalizations: []personalization{{To: []emailAddress{{Email: msg.To}}}},
		From:             emailAddress{Email: c.fromEmail, Name: c.fromName},
		Subject:          msg.Subject,
		Content:          []content{{Type: "text/html", Value: msg.HTML}},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/v3/mail/send")
	if err != nil {
		return fmt.Errorf("mailer: send request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mailer: send failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

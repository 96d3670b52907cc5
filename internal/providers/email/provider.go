// Package email sends transactional email through the Brevo API.
package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/sync-cloud/backend/internal/infrastructure/config"
	"github.com/sync-cloud/backend/internal/infrastructure/logging"
)

// ErrNotConfigured signals missing vendor credentials. The handler maps
// this to a generic 500 without leaking which value is absent.
var ErrNotConfigured = errors.New("email service not configured")

// VendorError carries a non-success vendor response: its status and the
// best-effort parsed error body.
type VendorError struct {
	StatusCode int
	Details    any
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("vendor returned status %d", e.StatusCode)
}

// Provider wraps the Brevo transactional email endpoint. Exactly one
// outbound call per Send; no retry, no backoff.
type Provider struct {
	client *resty.Client
	cfg    config.BrevoConfig
	logger *logging.Logger
}

// New creates an email provider.
func New(cfg config.BrevoConfig, logger *logging.Logger) *Provider {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("User-Agent", "sync-backend/1.0")

	return &Provider{client: client, cfg: cfg, logger: logger}
}

type sender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type recipient struct {
	Email string `json:"email"`
}

type sendRequest struct {
	Sender      sender      `json:"sender"`
	To          []recipient `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
}

// Send delivers one email and returns the vendor message id.
func (p *Provider) Send(ctx context.Context, to, subject, message string) (string, error) {
	if !p.cfg.Configured() {
		return "", ErrNotConfigured
	}

	html, err := renderTemplate(subject, message)
	if err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}

	var result sendResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("api-key", p.cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(sendRequest{
			Sender:      sender{Name: p.cfg.SenderName, Email: p.cfg.SenderEmail},
			To:          []recipient{{Email: to}},
			Subject:     subject,
			HTMLContent: html,
		}).
		SetResult(&result).
		Post(p.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("email vendor call failed: %w", err)
	}

	if resp.IsError() {
		var details any
		if err := sonic.Unmarshal(resp.Body(), &details); err != nil {
			details = resp.String()
		}
		p.logger.Warn("email vendor rejected send",
			zap.Int("status", resp.StatusCode()))
		return "", &VendorError{StatusCode: resp.StatusCode(), Details: details}
	}

	return result.MessageID, nil
}

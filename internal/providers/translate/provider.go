// Package translate proxies text translation through the Azure
// Translator API.
package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/sync-cloud/backend/internal/infrastructure/config"
	"github.com/sync-cloud/backend/internal/infrastructure/logging"
)

// ErrNotConfigured signals missing vendor credentials.
var ErrNotConfigured = errors.New("translation service not configured")

// Result is a normalized translation outcome.
type Result struct {
	TranslatedText   string
	DetectedLanguage string
	TargetLanguage   string
}

// Provider wraps the Azure Translator endpoint. One outbound call per
// Translate; no retry.
type Provider struct {
	client *resty.Client
	cfg    config.TranslatorConfig
	logger *logging.Logger
}

// New creates a translate provider.
func New(cfg config.TranslatorConfig, logger *logging.Logger) *Provider {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("User-Agent", "sync-backend/1.0")

	return &Provider{client: client, cfg: cfg, logger: logger}
}

type translateItem struct {
	Text string `json:"text"`
}

type vendorResult struct {
	DetectedLanguage *struct {
		Language string  `json:"language"`
		Score    float64 `json:"score"`
	} `json:"detectedLanguage"`
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

// Translate converts text into targetLanguage. The vendor detects the
// source language; when it omits detection the result reports "unknown".
func (p *Provider) Translate(ctx context.Context, text, targetLanguage string) (*Result, error) {
	if !p.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	var results []vendorResult
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Ocp-Apim-Subscription-Key", p.cfg.APIKey).
		SetHeader("Ocp-Apim-Subscription-Region", p.cfg.Region).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("api-version", "3.0").
		SetQueryParam("to", targetLanguage).
		SetBody([]translateItem{{Text: text}}).
		SetResult(&results).
		Post(p.cfg.Endpoint + "/translate")
	if err != nil {
		return nil, fmt.Errorf("translation vendor call failed: %w", err)
	}

	if resp.IsError() {
		p.logger.Warn("translation vendor rejected request",
			zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("translation failed: %d - %s", resp.StatusCode(), resp.String())
	}

	if len(results) == 0 || len(results[0].Translations) == 0 {
		return nil, errors.New("translation vendor returned empty result")
	}

	first := results[0]
	detected := "unknown"
	if first.DetectedLanguage != nil && first.DetectedLanguage.Language != "" {
		detected = first.DetectedLanguage.Language
	}

	return &Result{
		TranslatedText:   first.Translations[0].Text,
		DetectedLanguage: detected,
		TargetLanguage:   first.Translations[0].To,
	}, nil
}

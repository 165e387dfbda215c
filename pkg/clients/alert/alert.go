// Package alert posts factory risk alerts to an operations webhook
// (Slack-style or any JSON receiver).
package alert

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/config"
)

// Notifier exposes the alert delivery operation used by the scheduler.
type Notifier interface {
	SendRiskAlert(ctx context.Context, alert RiskAlert) error
}

// RiskAlert is the webhook payload for a factory risk escalation.
type RiskAlert struct {
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	Severity         string    `json:"severity"`
	RiskScore        float64   `json:"risk_score"`
	CriticalMachines int       `json:"critical_machines"`
	LowStockItems    int       `json:"low_stock_items"`
	Timestamp        time.Time `json:"timestamp"`
}

// WebhookClient is a resty-backed implementation of Notifier.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookClient builds an alert client from the provided configuration.
func NewWebhookClient(cfg config.AlertConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	if cfg.AuthToken != "" {
		restyClient.SetAuthToken(cfg.AuthToken)
	}

	return &WebhookClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

// SendRiskAlert delivers one alert payload to the configured webhook.
func (c *WebhookClient) SendRiskAlert(ctx context.Context, alert RiskAlert) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send risk alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}

// Package scan triggers the external lead-sourcing webhook.
package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"crm_backend/platform/apperr"
	"crm_backend/platform/logger"
)

const defaultHTTPTimeout = 30 * time.Second

// Client forwards scan requests to the configured automation webhook. The
// webhook crawls the given city and sector and feeds discovered leads back
// through the regular lead endpoints.
type Client struct {
	httpClient *http.Client
	webhookURL string
	log        *logger.Logger
}

// New creates a scan client. An empty webhookURL leaves the client in an
// unconfigured state; Trigger then fails without making a request.
func New(webhookURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		webhookURL: webhookURL,
		log:        log,
	}
}

type webhookPayload struct {
	City   string `json:"city"`
	Sector string `json:"sector"`
	Query  string `json:"query"`
}

// Trigger asks the webhook to start a scan for the given city and sector.
func (c *Client) Trigger(ctx context.Context, city, sector string) error {
	city = strings.TrimSpace(city)
	sector = strings.TrimSpace(sector)
	if city == "" || sector == "" {
		return apperr.Validation("city and sector required")
	}
	if c.webhookURL == "" {
		c.log.Error("lead scan webhook is not configured")
		return apperr.Internal("scan webhook not configured")
	}

	body, err := json.Marshal(webhookPayload{
		City:   city,
		Sector: sector,
		Query:  city + " " + sector,
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to encode scan request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to build scan request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("lead scan webhook unreachable", "error", err)
		return apperr.Wrap(apperr.KindInternal, "failed to trigger scan", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Error("lead scan webhook rejected request",
			"status", resp.StatusCode,
			"body", string(respBody),
		)
		return apperr.Internal("failed to trigger scan")
	}
	return nil
}

// AngelaMos | 2026
// webhook.go

package scan

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/azzedinedj/winner-product-inno/internal/config"
)

const maxResponseBytes = 1 << 20

// WebhookClient issues the single best-effort call to the external workflow
// webhook. One attempt, one timeout, no retry; any failure is the caller's
// cue to fall back.
type WebhookClient struct {
	url    string
	secret string
	client *http.Client
}

func NewWebhookClient(cfg config.ScanConfig) *WebhookClient {
	return &WebhookClient{
		url:    cfg.WebhookURL,
		secret: cfg.WebhookSecret,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type webhookRequest struct {
	AccountID   string    `json:"account_id"`
	RequestedAt time.Time `json:"requested_at"`
}

func (c *WebhookClient) Scan(
	ctx context.Context,
	accountID string,
) ([]Product, error) {
	if c.url == "" {
		return nil, fmt.Errorf("webhook scan: no webhook configured")
	}

	body, err := json.Marshal(webhookRequest{
		AccountID:   accountID,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("webhook scan: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.url,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("webhook scan: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set("X-Signature", Sign(c.secret, body))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook scan: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf(
			"webhook scan: unexpected status %d",
			resp.StatusCode,
		)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("webhook scan: read response: %w", err)
	}

	products, err := ExtractProducts(string(raw))
	if err != nil {
		return nil, fmt.Errorf("webhook scan: %w", err)
	}

	return products, nil
}

// Sign computes the hex HMAC-SHA256 signature sent in X-Signature.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

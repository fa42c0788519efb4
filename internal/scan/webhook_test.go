// AngelaMos | 2026
// webhook_test.go

package scan

import (
	"context"
	"crypto/hmac"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azzedinedj/winner-product-inno/internal/config"
)

func TestWebhookClient_Scan(t *testing.T) {
	const secret = "shh"

	var gotSignature string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotSignature = r.Header.Get("X-Signature")
			gotBody, _ = io.ReadAll(r.Body)

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test server
			w.Write([]byte(
				`{"products": [{"name": "Galaxy Lamp", "score": 88}]}`,
			))
		},
	))
	defer srv.Close()

	client := NewWebhookClient(config.ScanConfig{
		WebhookURL:    srv.URL,
		WebhookSecret: secret,
		Timeout:       5 * time.Second,
	})

	products, err := client.Scan(context.Background(), "acct-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Galaxy Lamp", products[0].Name)

	assert.Equal(
		t,
		"acct-1",
		gjson.GetBytes(gotBody, "account_id").String(),
	)
	assert.True(
		t,
		hmac.Equal([]byte(gotSignature), []byte(Sign(secret, gotBody))),
		"signature must cover the exact bytes sent",
	)
}

func TestWebhookClient_Scan_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	))
	defer srv.Close()

	client := NewWebhookClient(config.ScanConfig{
		WebhookURL: srv.URL,
		Timeout:    5 * time.Second,
	})

	_, err := client.Scan(context.Background(), "acct-1")
	require.Error(t, err)
}

func TestWebhookClient_Scan_Unconfigured(t *testing.T) {
	client := NewWebhookClient(config.ScanConfig{})

	_, err := client.Scan(context.Background(), "acct-1")
	require.Error(t, err)
}

func TestSign_Deterministic(t *testing.T) {
	body := []byte(`{"account_id":"a"}`)

	assert.Equal(t, Sign("k", body), Sign("k", body))
	assert.NotEqual(t, Sign("k", body), Sign("other", body))
	assert.Len(t, Sign("k", body), 64)
}

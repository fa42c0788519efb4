// AngelaMos | 2026
// ai.go

package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/azzedinedj/winner-product-inno/internal/config"
)

var ErrNoProducts = errors.New("no product list found in response")

const scanPrompt = `You are a dropshipping market analyst. Return a JSON array
of 10 currently winning dropshipping products. Each element must have the
fields: name, niche, score (0-100), supplier_price, resale_price, rationale.
Return only the JSON array.`

// AIClient is the fallback path: one text-completion request, then a
// best-effort hunt for a JSON product list inside whatever free-form text
// the model returned.
type AIClient struct {
	endpoint string
	key      string
	model    string
	client   *http.Client
}

func NewAIClient(cfg config.ScanConfig) *AIClient {
	return &AIClient{
		endpoint: cfg.AIEndpoint,
		key:      cfg.AIKey,
		model:    cfg.AIModel,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *AIClient) Scan(ctx context.Context, _ string) ([]Product, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("ai scan: no ai endpoint configured")
	}

	body, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []completionMessage{
			{Role: "user", Content: scanPrompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ai scan: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("ai scan: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai scan: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ai scan: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("ai scan: read response: %w", err)
	}

	content := gjson.GetBytes(raw, "choices.0.message.content").String()
	if content == "" {
		// Some providers return the completion at the top level.
		content = string(raw)
	}

	products, err := ExtractProducts(content)
	if err != nil {
		return nil, fmt.Errorf("ai scan: %w", err)
	}

	return products, nil
}

// ExtractProducts digs a product list out of free-form text: fenced code
// blocks are unwrapped, then the first balanced JSON array (or an object
// with a "products" field) is parsed leniently with gjson. Elements missing
// a name are dropped rather than failing the whole scan.
func ExtractProducts(text string) ([]Product, error) {
	candidate := stripCodeFences(text)

	parsed := gjson.Parse(candidate)
	if parsed.IsObject() {
		if list := parsed.Get("products"); list.IsArray() {
			return mapProducts(list), nil
		}
	}

	// Prose can contain bracketed asides before the real list, so every
	// balanced array is a candidate until one yields products.
	for offset := 0; offset < len(candidate); {
		i := strings.IndexByte(candidate[offset:], '[')
		if i == -1 {
			break
		}
		start := offset + i

		arr := balancedArrayAt(candidate, start)
		if arr != "" {
			list := gjson.Parse(arr)
			if list.IsArray() {
				if products := mapProducts(list); len(products) > 0 {
					return products, nil
				}
			}
		}

		offset = start + 1
	}

	return nil, ErrNoProducts
}

func mapProducts(list gjson.Result) []Product {
	var products []Product

	list.ForEach(func(_, item gjson.Result) bool {
		name := item.Get("name").String()
		if name == "" {
			name = item.Get("product").String()
		}
		if name == "" {
			return true
		}

		products = append(products, Product{
			Name:          name,
			Niche:         item.Get("niche").String(),
			Score:         item.Get("score").Float(),
			SupplierPrice: item.Get("supplier_price").Float(),
			ResalePrice:   item.Get("resale_price").Float(),
			Rationale:     item.Get("rationale").String(),
		})
		return true
	})

	return products
}

func stripCodeFences(text string) string {
	start := strings.Index(text, "```")
	if start == -1 {
		return text
	}

	rest := text[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		// Skip a language tag such as ```json.
		if tag := strings.TrimSpace(rest[:nl]); len(tag) <= 10 &&
			!strings.ContainsAny(tag, "[{") {
			rest = rest[nl+1:]
		}
	}

	if end := strings.Index(rest, "```"); end != -1 {
		return rest[:end]
	}

	return rest
}

// balancedArrayAt returns the balanced array starting at text[start],
// tracking string literals so brackets inside values do not count.
func balancedArrayAt(text string, start int) string {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}

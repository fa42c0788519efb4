// AngelaMos | 2026
// dto.go

package scan

import (
	"time"
)

// Product is one scored dropshipping candidate.
type Product struct {
	Name          string  `json:"name"`
	Niche         string  `json:"niche,omitempty"`
	Score         float64 `json:"score"`
	SupplierPrice float64 `json:"supplier_price,omitempty"`
	ResalePrice   float64 `json:"resale_price,omitempty"`
	Rationale     string  `json:"rationale,omitempty"`
}

type ScanResult struct {
	Products  []Product `json:"products"`
	Source    string    `json:"source"`
	ScannedAt time.Time `json:"scanned_at"`
}

const (
	SourceWebhook = "webhook"
	SourceAI      = "ai"
)

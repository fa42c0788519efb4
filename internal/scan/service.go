// AngelaMos | 2026
// service.go

package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/azzedinedj/winner-product-inno/internal/account"
	"github.com/azzedinedj/winner-product-inno/internal/core"
)

var ErrScanFailed = errors.New("product scan failed")

// Scanner is one way of producing a product list. The webhook client is the
// primary; the AI client is the fallback.
type Scanner interface {
	Scan(ctx context.Context, accountID string) ([]Product, error)
}

type Service struct {
	accounts *account.Service
	primary  Scanner
	fallback Scanner
	redis    *redis.Client
	cacheTTL time.Duration
}

func NewService(
	accounts *account.Service,
	primary Scanner,
	fallback Scanner,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		accounts: accounts,
		primary:  primary,
		fallback: fallback,
		redis:    rdb,
		cacheTTL: cacheTTL,
	}
}

// Scan runs a product scan for the given account: webhook first, one AI
// fallback on any webhook failure. A successful result replaces the
// account's cached last scan.
func (s *Service) Scan(ctx context.Context, accountID string) (*ScanResult, error) {
	acct, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !acct.IsActive() && !acct.IsAdmin() {
		return nil, core.ErrForbidden
	}

	result := &ScanResult{Source: SourceWebhook}

	result.Products, err = s.primary.Scan(ctx, accountID)
	if err != nil {
		slog.Warn("webhook scan failed, falling back to ai",
			"account_id", accountID,
			"error", err,
		)

		result.Source = SourceAI
		result.Products, err = s.fallback.Scan(ctx, accountID)
		if err != nil {
			slog.Error("ai fallback scan failed",
				"account_id", accountID,
				"error", err,
			)
			return nil, fmt.Errorf("%w: %s", ErrScanFailed, err)
		}
	}

	result.ScannedAt = time.Now().UTC()
	s.cacheResult(ctx, accountID, result)

	return result, nil
}

// LastScan returns the account's most recent successful result, or
// core.ErrNotFound when none is cached.
func (s *Service) LastScan(ctx context.Context, accountID string) (*ScanResult, error) {
	if s.redis == nil {
		return nil, core.ErrNotFound
	}

	raw, err := s.redis.Get(ctx, cacheKey(accountID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("load cached scan: %w", err)
	}

	var result ScanResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode cached scan: %w", err)
	}

	return &result, nil
}

// cacheResult is best effort: a cache write failure never fails the scan.
func (s *Service) cacheResult(ctx context.Context, accountID string, result *ScanResult) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		slog.Warn("encode scan result for cache", "error", err)
		return
	}

	if err := s.redis.Set(ctx, cacheKey(accountID), raw, s.cacheTTL).Err(); err != nil {
		slog.Warn("cache scan result",
			"account_id", accountID,
			"error", err,
		)
	}
}

func cacheKey(accountID string) string {
	return "scan:last:" + accountID
}

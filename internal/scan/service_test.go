// AngelaMos | 2026
// service_test.go

package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azzedinedj/winner-product-inno/internal/account"
	"github.com/azzedinedj/winner-product-inno/internal/config"
	"github.com/azzedinedj/winner-product-inno/internal/core"
	"github.com/azzedinedj/winner-product-inno/internal/storage"
)

type fakeScanner struct {
	products []Product
	err      error
	calls    int
}

func (f *fakeScanner) Scan(context.Context, string) ([]Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type memorySlot struct {
	data []byte
}

func (s *memorySlot) Load(context.Context) ([]byte, error) {
	if s.data == nil {
		return nil, storage.ErrSlotEmpty
	}
	return s.data, nil
}

func (s *memorySlot) Save(_ context.Context, doc []byte) error {
	s.data = append([]byte(nil), doc...)
	return nil
}

func activeAccount(t *testing.T) (*account.Service, string) {
	t.Helper()
	ctx := context.Background()

	dir, err := account.OpenDocumentDirectory(
		ctx,
		&memorySlot{},
		"admin@example.com",
	)
	require.NoError(t, err)

	svc := account.NewService(dir, config.PlansConfig{
		Known: []string{"monthly_500"},
	})

	acct, err := svc.Signup(ctx, "user@example.com")
	require.NoError(t, err)
	_, err = svc.SelectPlan(ctx, acct.ID, "monthly_500")
	require.NoError(t, err)
	_, err = svc.SubmitContact(ctx, acct.ID, "+15551234567")
	require.NoError(t, err)
	_, applied, err := svc.Approve(ctx, acct.ID)
	require.NoError(t, err)
	require.True(t, applied)

	return svc, acct.ID
}

func TestScan_WebhookFirst(t *testing.T) {
	accounts, accountID := activeAccount(t)
	primary := &fakeScanner{products: []Product{{Name: "Hit", Score: 90}}}
	fallback := &fakeScanner{}

	svc := NewService(accounts, primary, fallback, nil, 0)

	result, err := svc.Scan(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, SourceWebhook, result.Source)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Hit", result.Products[0].Name)
	assert.False(t, result.ScannedAt.IsZero())
	assert.Zero(t, fallback.calls, "fallback untouched when webhook succeeds")
}

func TestScan_FallsBackToAI(t *testing.T) {
	accounts, accountID := activeAccount(t)
	primary := &fakeScanner{err: errors.New("webhook down")}
	fallback := &fakeScanner{products: []Product{{Name: "Backup", Score: 70}}}

	svc := NewService(accounts, primary, fallback, nil, 0)

	result, err := svc.Scan(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, SourceAI, result.Source)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Backup", result.Products[0].Name)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestScan_BothPathsFail(t *testing.T) {
	accounts, accountID := activeAccount(t)
	primary := &fakeScanner{err: errors.New("webhook down")}
	fallback := &fakeScanner{err: errors.New("ai down")}

	svc := NewService(accounts, primary, fallback, nil, 0)

	_, err := svc.Scan(context.Background(), accountID)
	require.ErrorIs(t, err, ErrScanFailed)
}

func TestScan_RequiresApprovedAccount(t *testing.T) {
	ctx := context.Background()

	dir, err := account.OpenDocumentDirectory(
		ctx,
		&memorySlot{},
		"admin@example.com",
	)
	require.NoError(t, err)

	accounts := account.NewService(dir, config.PlansConfig{
		Known: []string{"monthly_500"},
	})
	acct, err := accounts.Signup(ctx, "newbie@example.com")
	require.NoError(t, err)

	primary := &fakeScanner{products: []Product{{Name: "Hit"}}}
	svc := NewService(accounts, primary, &fakeScanner{}, nil, 0)

	_, err = svc.Scan(ctx, acct.ID)
	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Zero(t, primary.calls)
}

func TestLastScan_EmptyCache(t *testing.T) {
	accounts, accountID := activeAccount(t)
	svc := NewService(accounts, &fakeScanner{}, &fakeScanner{}, nil, 0)

	_, err := svc.LastScan(context.Background(), accountID)
	require.ErrorIs(t, err, core.ErrNotFound)
}

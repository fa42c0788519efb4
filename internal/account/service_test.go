// AngelaMos | 2026
// service_test.go

package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azzedinedj/winner-product-inno/internal/config"
	"github.com/azzedinedj/winner-product-inno/internal/core"
)

func newTestService(t *testing.T) (*Service, *DocumentDirectory) {
	t.Helper()
	dir := openDirectory(t, &fakeSlot{})
	svc := NewService(dir, config.PlansConfig{
		Known: []string{"monthly_500", "monthly_1000"},
	})
	return svc, dir
}

func signupUser(t *testing.T, svc *Service, email string) *Account {
	t.Helper()
	acct, err := svc.Signup(context.Background(), email)
	require.NoError(t, err)
	return acct
}

func TestSelectPlan(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	acct := signupUser(t, svc, "alice@example.com")

	_, err := svc.SelectPlan(ctx, acct.ID, "weekly_weird")
	require.ErrorIs(t, err, core.ErrInvalidInput)

	updated, err := svc.SelectPlan(ctx, acct.ID, "monthly_500")
	require.NoError(t, err)
	require.NotNil(t, updated.Plan)
	assert.Equal(t, "monthly_500", *updated.Plan)

	// The plan is chosen once.
	_, err = svc.SelectPlan(ctx, acct.ID, "monthly_1000")
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSelectPlan_OnlyDuringSignupFlow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	acct := signupUser(t, svc, "alice@example.com")

	_, err := svc.SelectPlan(ctx, acct.ID, "monthly_500")
	require.NoError(t, err)
	_, err = svc.SubmitContact(ctx, acct.ID, "+15551234567")
	require.NoError(t, err)

	_, err = svc.SelectPlan(ctx, acct.ID, "monthly_1000")
	require.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestSubmitContact(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	acct := signupUser(t, svc, "alice@example.com")

	// Contact requires a chosen plan.
	_, err := svc.SubmitContact(ctx, acct.ID, "+15551234567")
	require.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.SelectPlan(ctx, acct.ID, "monthly_500")
	require.NoError(t, err)

	updated, err := svc.SubmitContact(ctx, acct.ID, "+15551234567")
	require.NoError(t, err)
	require.NotNil(t, updated.WhatsApp)
	assert.Equal(t, "+15551234567", *updated.WhatsApp)
	assert.Equal(t, StatusPending, updated.Status)

	// Submitting again while pending is not a legal transition.
	_, err = svc.SubmitContact(ctx, acct.ID, "+15559999999")
	require.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestLogin_NormalizesEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	acct := signupUser(t, svc, "alice@example.com")

	got, found, err := svc.Login(ctx, "  Alice@Example.COM ")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, acct.ID, got.ID)
}

func TestModerationVerbs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	acct := signupUser(t, svc, "alice@example.com")

	_, err := svc.SelectPlan(ctx, acct.ID, "monthly_500")
	require.NoError(t, err)
	_, err = svc.SubmitContact(ctx, acct.ID, "+15551234567")
	require.NoError(t, err)

	rejected, applied, err := svc.Reject(ctx, acct.ID, "missing details")
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, StatusRejected, rejected.Status)

	approved, applied, err := svc.Approve(ctx, acct.ID)
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, StatusActive, approved.Status)
	assert.Nil(t, approved.RejectionReason)

	suspended, applied, err := svc.Suspend(ctx, acct.ID)
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, StatusSuspended, suspended.Status)

	reinstated, applied, err := svc.Reinstate(ctx, acct.ID)
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, StatusActive, reinstated.Status)
}

func TestListForModeration(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, email := range []string{
		"a@example.com",
		"b@example.com",
		"c@example.com",
	} {
		signupUser(t, svc, email)
	}

	// The seeded admin never shows in the moderation table.
	accounts, total, err := svc.ListForModeration(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	for _, acct := range accounts {
		assert.Equal(t, RoleUser, acct.Role)
	}

	// Signup order is stable.
	assert.Equal(t, "a@example.com", accounts[0].Email)
	assert.Equal(t, "c@example.com", accounts[2].Email)

	// Status filter.
	accounts, total, err = svc.ListForModeration(ctx, ListParams{
		Status: StatusPending,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, accounts)

	// Pagination.
	accounts, total, err = svc.ListForModeration(ctx, ListParams{
		Page:     2,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, accounts, 1)
	assert.Equal(t, "c@example.com", accounts[0].Email)
}

// AngelaMos | 2026
// document_test.go

package account

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azzedinedj/winner-product-inno/internal/core"
	"github.com/azzedinedj/winner-product-inno/internal/storage"
)

// --- helpers ---

type fakeSlot struct {
	data    []byte
	saveErr error
	saves   int
}

func (s *fakeSlot) Load(context.Context) ([]byte, error) {
	if s.data == nil {
		return nil, storage.ErrSlotEmpty
	}
	return s.data, nil
}

func (s *fakeSlot) Save(_ context.Context, doc []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.data = append([]byte(nil), doc...)
	return nil
}

func openDirectory(t *testing.T, slot storage.Slot) *DocumentDirectory {
	t.Helper()
	dir, err := OpenDocumentDirectory(
		context.Background(),
		slot,
		"admin@example.com",
	)
	require.NoError(t, err)
	return dir
}

func persistedDocument(t *testing.T, slot *fakeSlot) Document {
	t.Helper()
	var doc Document
	require.NoError(t, json.Unmarshal(slot.data, &doc))
	return doc
}

// --- tests ---

func TestOpenDocumentDirectory_SeedsAdminOnEmptySlot(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)

	accounts, err := dir.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	admin := accounts[0]
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.Equal(t, StatusActive, admin.Status)
	assert.NotEmpty(t, admin.ID)

	// Seed is written through immediately.
	doc := persistedDocument(t, slot)
	require.Len(t, doc.Users, 1)
	assert.Equal(t, admin.ID, doc.Users[0].ID)
}

func TestOpenDocumentDirectory_NeverReseedsPersistedCollection(t *testing.T) {
	empty, err := json.Marshal(Document{Users: []Account{}})
	require.NoError(t, err)

	slot := &fakeSlot{data: empty}
	dir := openDirectory(t, slot)

	accounts, err := dir.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts, "empty persisted collection must load verbatim")
}

func TestOpenDocumentDirectory_ReloadsAcrossRestart(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)

	created, err := dir.Signup(context.Background(), "user@example.com")
	require.NoError(t, err)

	reopened := openDirectory(t, slot)

	got, err := reopened.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	accounts, err := reopened.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestSignup(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)
	ctx := context.Background()

	first, err := dir.Signup(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, StatusNew, first.Status)
	assert.Equal(t, RoleUser, first.Role)
	assert.Nil(t, first.Plan)
	assert.Nil(t, first.WhatsApp)

	second, err := dir.Signup(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = dir.Signup(ctx, "alice@example.com")
	require.ErrorIs(t, err, core.ErrDuplicateKey)

	// Email comparison ignores case and whitespace.
	_, err = dir.Signup(ctx, "  ALICE@example.com ")
	require.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestLogin(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)
	ctx := context.Background()

	created, err := dir.Signup(ctx, "alice@example.com")
	require.NoError(t, err)

	got, found, err := dir.Login(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created.ID, got.ID)

	_, found, err = dir.Login(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateProfile_MergesOnlyProvidedFields(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)
	ctx := context.Background()

	created, err := dir.Signup(ctx, "alice@example.com")
	require.NoError(t, err)

	plan := "monthly_500"
	updated, err := dir.UpdateProfile(ctx, created.ID, ProfilePatch{
		Plan: &plan,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Plan)
	assert.Equal(t, plan, *updated.Plan)
	assert.Nil(t, updated.WhatsApp, "absent fields stay untouched")
	assert.Equal(t, StatusNew, updated.Status)

	whatsapp := "+15551234567"
	pending := StatusPending
	updated, err = dir.UpdateProfile(ctx, created.ID, ProfilePatch{
		WhatsApp: &whatsapp,
		Status:   &pending,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Plan)
	assert.Equal(t, plan, *updated.Plan, "earlier fields survive later patches")
	require.NotNil(t, updated.WhatsApp)
	assert.Equal(t, whatsapp, *updated.WhatsApp)
	assert.Equal(t, StatusPending, updated.Status)
}

func TestUpdateProfile_UnknownID(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)

	plan := "monthly_500"
	_, err := dir.UpdateProfile(context.Background(), "missing", ProfilePatch{
		Plan: &plan,
	})
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestAdminAction_UnknownIDIsNoOp(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)
	savesBefore := slot.saves

	acct, applied, err := dir.AdminAction(
		context.Background(),
		"missing",
		StatusActive,
		"",
	)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Nil(t, acct)
	assert.Equal(t, savesBefore, slot.saves, "no-op must not rewrite the document")
}

func TestAdminAction_AdminsAreNeverModerated(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)
	ctx := context.Background()

	accounts, err := dir.List(ctx)
	require.NoError(t, err)
	adminID := accounts[0].ID

	_, _, err = dir.AdminAction(ctx, adminID, StatusSuspended, "")
	require.ErrorIs(t, err, core.ErrForbidden)
}

func TestAdminAction_Lifecycle(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)
	ctx := context.Background()

	created, err := dir.Signup(ctx, "alice@example.com")
	require.NoError(t, err)

	pending := StatusPending
	_, err = dir.UpdateProfile(ctx, created.ID, ProfilePatch{Status: &pending})
	require.NoError(t, err)

	// pending -> rejected records the reason.
	acct, applied, err := dir.AdminAction(
		ctx,
		created.ID,
		StatusRejected,
		"incomplete contact details",
	)
	require.NoError(t, err)
	require.True(t, applied)
	require.NotNil(t, acct.RejectionReason)
	assert.Equal(t, "incomplete contact details", *acct.RejectionReason)

	// rejected -> active clears it.
	acct, applied, err = dir.AdminAction(ctx, created.ID, StatusActive, "")
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, StatusActive, acct.Status)
	assert.Nil(t, acct.RejectionReason)

	// active -> suspended -> active.
	_, applied, err = dir.AdminAction(ctx, created.ID, StatusSuspended, "")
	require.NoError(t, err)
	assert.True(t, applied)

	acct, applied, err = dir.AdminAction(ctx, created.ID, StatusActive, "")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, StatusActive, acct.Status)
}

func TestAdminAction_RejectsIllegalTransitions(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)
	ctx := context.Background()

	created, err := dir.Signup(ctx, "alice@example.com")
	require.NoError(t, err)

	// new accounts are not yet in the moderation queue
	_, _, err = dir.AdminAction(ctx, created.ID, StatusActive, "")
	require.ErrorIs(t, err, core.ErrInvalidTransition)

	pending := StatusPending
	_, err = dir.UpdateProfile(ctx, created.ID, ProfilePatch{Status: &pending})
	require.NoError(t, err)

	_, _, err = dir.AdminAction(ctx, created.ID, StatusActive, "")
	require.NoError(t, err)

	// active accounts cannot be rejected outright
	_, _, err = dir.AdminAction(ctx, created.ID, StatusRejected, "nope")
	require.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestMutations_FailedSaveLeavesStoreUnchanged(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)
	ctx := context.Background()

	created, err := dir.Signup(ctx, "alice@example.com")
	require.NoError(t, err)

	slot.saveErr = errors.New("slot unavailable")

	_, err = dir.Signup(ctx, "bob@example.com")
	require.ErrorIs(t, err, core.ErrPersistence)

	plan := "monthly_500"
	_, err = dir.UpdateProfile(ctx, created.ID, ProfilePatch{Plan: &plan})
	require.ErrorIs(t, err, core.ErrPersistence)

	slot.saveErr = nil

	accounts, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2, "failed signup must not be applied")

	got, err := dir.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Plan, "failed patch must not be applied")
}

func TestReturnedAccountsAreDetached(t *testing.T) {
	slot := &fakeSlot{}
	dir := openDirectory(t, slot)
	ctx := context.Background()

	created, err := dir.Signup(ctx, "alice@example.com")
	require.NoError(t, err)

	created.Email = "mutated@example.com"
	created.Status = StatusActive

	got, err := dir.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, StatusNew, got.Status)
}

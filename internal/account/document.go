// AngelaMos | 2026
// document.go

package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/azzedinedj/winner-product-inno/internal/core"
	"github.com/azzedinedj/winner-product-inno/internal/storage"
)

// Document is the persisted shape of the whole collection.
type Document struct {
	Users []Account `json:"users"`
}

// DocumentDirectory keeps the collection in memory and rewrites the entire
// serialized document to its slot on every mutation, synchronously, before
// the mutation is acknowledged. All operations serialize through one mutex:
// the store is the single writer, and cross-process writers race with
// last-writer-wins semantics by design.
type DocumentDirectory struct {
	mu       sync.Mutex
	slot     storage.Slot
	accounts []Account
}

// OpenDocumentDirectory loads the persisted collection, seeding exactly one
// active admin account when the slot has never been written. A persisted
// collection, even an empty one, is loaded verbatim and never re-seeded.
func OpenDocumentDirectory(
	ctx context.Context,
	slot storage.Slot,
	adminEmail string,
) (*DocumentDirectory, error) {
	d := &DocumentDirectory{slot: slot}

	raw, err := slot.Load(ctx)
	if errors.Is(err, storage.ErrSlotEmpty) {
		d.accounts = []Account{seedAdmin(adminEmail)}
		if saveErr := d.save(ctx, d.accounts); saveErr != nil {
			return nil, saveErr
		}
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open account directory: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode account document: %w", err)
	}

	d.accounts = doc.Users
	return d, nil
}

func seedAdmin(email string) Account {
	return Account{
		ID:        uuid.New().String(),
		Email:     strings.ToLower(email),
		Status:    StatusActive,
		Role:      RoleAdmin,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (d *DocumentDirectory) Signup(
	ctx context.Context,
	email string,
) (*Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for i := range d.accounts {
		if d.accounts[i].Email == email {
			return nil, fmt.Errorf("signup: %w", core.ErrDuplicateKey)
		}
	}

	acct := Account{
		ID:        uuid.New().String(),
		Email:     email,
		Status:    StatusNew,
		Role:      RoleUser,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	next := append(cloneAll(d.accounts), acct)
	if err := d.save(ctx, next); err != nil {
		return nil, err
	}

	d.accounts = next
	return acct.Clone(), nil
}

func (d *DocumentDirectory) Login(
	_ context.Context,
	email string,
) (*Account, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// First exact match in signup order wins.
	for i := range d.accounts {
		if d.accounts[i].Email == email {
			return d.accounts[i].Clone(), true, nil
		}
	}

	return nil, false, nil
}

func (d *DocumentDirectory) Get(
	_ context.Context,
	id string,
) (*Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.accounts {
		if d.accounts[i].ID == id {
			return d.accounts[i].Clone(), nil
		}
	}

	return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
}

func (d *DocumentDirectory) List(_ context.Context) ([]Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return cloneAll(d.accounts), nil
}

func (d *DocumentDirectory) UpdateProfile(
	ctx context.Context,
	id string,
	patch ProfilePatch,
) (*Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := -1
	for i := range d.accounts {
		if d.accounts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("update profile: %w", core.ErrNotFound)
	}

	next := cloneAll(d.accounts)
	applyPatch(&next[idx], patch)

	if err := d.save(ctx, next); err != nil {
		return nil, err
	}

	d.accounts = next
	return next[idx].Clone(), nil
}

func (d *DocumentDirectory) AdminAction(
	ctx context.Context,
	id, status, reason string,
) (*Account, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := -1
	for i := range d.accounts {
		if d.accounts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		// Unknown target: leave the collection untouched, signal nothing.
		return nil, false, nil
	}

	if d.accounts[idx].IsAdmin() {
		return nil, false, fmt.Errorf("admin action: %w", core.ErrForbidden)
	}

	if !CanTransition(d.accounts[idx].Status, status) {
		return nil, false, fmt.Errorf(
			"admin action: %s -> %s: %w",
			d.accounts[idx].Status,
			status,
			core.ErrInvalidTransition,
		)
	}

	next := cloneAll(d.accounts)
	applyStatus(&next[idx], status, reason)

	if err := d.save(ctx, next); err != nil {
		return nil, false, err
	}

	d.accounts = next
	return next[idx].Clone(), true, nil
}

func applyPatch(acct *Account, patch ProfilePatch) {
	if patch.WhatsApp != nil {
		v := *patch.WhatsApp
		acct.WhatsApp = &v
	}
	if patch.Plan != nil {
		v := *patch.Plan
		acct.Plan = &v
	}
	if patch.Status != nil {
		acct.Status = *patch.Status
	}
}

func applyStatus(acct *Account, status, reason string) {
	acct.Status = status
	if status == StatusRejected && reason != "" {
		r := reason
		acct.RejectionReason = &r
	} else {
		acct.RejectionReason = nil
	}
}

// save rewrites the whole document. The in-memory collection is only
// swapped by callers after a successful save, so a persistence failure
// surfaces to the caller and leaves the store unchanged.
func (d *DocumentDirectory) save(ctx context.Context, accounts []Account) error {
	doc, err := json.Marshal(Document{Users: accounts})
	if err != nil {
		return fmt.Errorf("encode account document: %w", err)
	}

	if err := d.slot.Save(ctx, doc); err != nil {
		return fmt.Errorf("%w: %w", core.ErrPersistence, err)
	}

	return nil
}

func cloneAll(accounts []Account) []Account {
	next := make([]Account, len(accounts))
	for i := range accounts {
		next[i] = *accounts[i].Clone()
	}
	return next
}

var _ Directory = (*DocumentDirectory)(nil)

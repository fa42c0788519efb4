// AngelaMos | 2026
// directory.go

package account

import (
	"context"
)

// ProfilePatch merges non-nil fields into an account. Fields already set on
// the account survive an absent patch field untouched.
type ProfilePatch struct {
	WhatsApp *string
	Plan     *string
	Status   *string
}

// Directory owns the account collection. Insertion order is signup order
// and is preserved by List and Login. Two implementations exist: the
// whole-document store (canonical behavior) and the postgres record store.
type Directory interface {
	// Signup appends a fresh role=user status=new account. Emails are
	// unique; a second signup with the same email fails with
	// core.ErrDuplicateKey.
	Signup(ctx context.Context, email string) (*Account, error)

	// Login finds the first account whose email matches exactly. The bool
	// reports whether a match exists; a miss is not an error.
	Login(ctx context.Context, email string) (*Account, bool, error)

	// Get fetches one account by id, core.ErrNotFound on a miss.
	Get(ctx context.Context, id string) (*Account, error)

	// List returns the whole collection in signup order.
	List(ctx context.Context) ([]Account, error)

	// UpdateProfile merges the patch into the account with the given id.
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*Account, error)

	// AdminAction drives the account to a new status. An unknown id is a
	// no-op (applied=false, nil error). A known id is checked against the
	// transition table and admin accounts are never moderated. The reason
	// is stored on rejection and cleared on every other transition.
	AdminAction(ctx context.Context, id, status, reason string) (*Account, bool, error)
}

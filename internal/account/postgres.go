// AngelaMos | 2026
// postgres.go

package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/azzedinedj/winner-product-inno/internal/core"
)

// PostgresDirectory is the record-store variant: one row per account keyed
// by id, updated in place instead of rewriting the whole collection. Signup
// order is preserved by a sequence column.
type PostgresDirectory struct {
	db *sqlx.DB
}

func NewPostgresDirectory(db *sqlx.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

// SeedAdmin inserts the well-known admin account unless any row exists.
// Runs once at startup; an already-populated table is left alone.
func (d *PostgresDirectory) SeedAdmin(
	ctx context.Context,
	adminEmail string,
) error {
	return core.InTx(ctx, d.db, func(tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM accounts`); err != nil {
			return fmt.Errorf("count accounts: %w", err)
		}

		if count > 0 {
			return nil
		}

		admin := seedAdmin(adminEmail)
		query := `
			INSERT INTO accounts (id, email, status, role, created_at)
			VALUES ($1, $2, $3, $4, $5)`

		if _, err := tx.ExecContext(ctx, query,
			admin.ID,
			admin.Email,
			admin.Status,
			admin.Role,
			admin.CreatedAt,
		); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}

		return nil
	})
}

func (d *PostgresDirectory) Signup(
	ctx context.Context,
	email string,
) (*Account, error) {
	acct := &Account{
		ID:        uuid.New().String(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Status:    StatusNew,
		Role:      RoleUser,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	query := `
		INSERT INTO accounts (id, email, status, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := d.db.ExecContext(ctx, query,
		acct.ID,
		acct.Email,
		acct.Status,
		acct.Role,
		acct.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, fmt.Errorf("signup: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	return acct, nil
}

func (d *PostgresDirectory) Login(
	ctx context.Context,
	email string,
) (*Account, bool, error) {
	query := `
		SELECT id, email, whatsapp, plan, status, role, rejection_reason, created_at
		FROM accounts
		WHERE email = $1
		ORDER BY seq
		LIMIT 1`

	var acct Account
	err := d.db.GetContext(ctx, &acct, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("login: %w", err)
	}

	return &acct, true, nil
}

func (d *PostgresDirectory) Get(
	ctx context.Context,
	id string,
) (*Account, error) {
	query := `
		SELECT id, email, whatsapp, plan, status, role, rejection_reason, created_at
		FROM accounts
		WHERE id = $1`

	var acct Account
	err := d.db.GetContext(ctx, &acct, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &acct, nil
}

func (d *PostgresDirectory) List(ctx context.Context) ([]Account, error) {
	query := `
		SELECT id, email, whatsapp, plan, status, role, rejection_reason, created_at
		FROM accounts
		ORDER BY seq`

	var accounts []Account
	if err := d.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return accounts, nil
}

func (d *PostgresDirectory) UpdateProfile(
	ctx context.Context,
	id string,
	patch ProfilePatch,
) (*Account, error) {
	var updated *Account

	err := core.InTx(ctx, d.db, func(tx *sqlx.Tx) error {
		acct, err := getForUpdate(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		applyPatch(acct, patch)

		query := `
			UPDATE accounts
			SET whatsapp = $2, plan = $3, status = $4
			WHERE id = $1`

		if _, err := tx.ExecContext(ctx, query,
			acct.ID,
			acct.WhatsApp,
			acct.Plan,
			acct.Status,
		); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		updated = acct
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (d *PostgresDirectory) AdminAction(
	ctx context.Context,
	id, status, reason string,
) (*Account, bool, error) {
	var (
		updated *Account
		applied bool
	)

	err := core.InTx(ctx, d.db, func(tx *sqlx.Tx) error {
		acct, err := getForUpdate(ctx, tx, id)
		if errors.Is(err, core.ErrNotFound) {
			// Unknown target: no-op, not an error.
			return nil
		}
		if err != nil {
			return fmt.Errorf("admin action: %w", err)
		}

		if acct.IsAdmin() {
			return fmt.Errorf("admin action: %w", core.ErrForbidden)
		}

		if !CanTransition(acct.Status, status) {
			return fmt.Errorf(
				"admin action: %s -> %s: %w",
				acct.Status,
				status,
				core.ErrInvalidTransition,
			)
		}

		applyStatus(acct, status, reason)

		query := `
			UPDATE accounts
			SET status = $2, rejection_reason = $3
			WHERE id = $1`

		if _, err := tx.ExecContext(ctx, query,
			acct.ID,
			acct.Status,
			acct.RejectionReason,
		); err != nil {
			return fmt.Errorf("admin action: %w", err)
		}

		updated = acct
		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return updated, applied, nil
}

func getForUpdate(
	ctx context.Context,
	tx *sqlx.Tx,
	id string,
) (*Account, error) {
	query := `
		SELECT id, email, whatsapp, plan, status, role, rejection_reason, created_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE`

	var acct Account
	err := tx.GetContext(ctx, &acct, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &acct, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ Directory = (*PostgresDirectory)(nil)

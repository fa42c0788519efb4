// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/azzedinedj/winner-product-inno/internal/config"
	"github.com/azzedinedj/winner-product-inno/internal/core"
)

// Service layers the screen-level policy over the Directory: which profile
// fields may be set when, and which admin verbs map to which transitions.
// The Directory itself only guards the transition table.
type Service struct {
	dir   Directory
	plans config.PlansConfig
}

func NewService(dir Directory, plans config.PlansConfig) *Service {
	return &Service{dir: dir, plans: plans}
}

func (s *Service) Signup(ctx context.Context, email string) (*Account, error) {
	return s.dir.Signup(ctx, email)
}

func (s *Service) Login(
	ctx context.Context,
	email string,
) (*Account, bool, error) {
	return s.dir.Login(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) Get(ctx context.Context, id string) (*Account, error) {
	return s.dir.Get(ctx, id)
}

// SelectPlan records the chosen subscription plan. The plan is chosen once,
// before a contact number can be submitted, and only while the account is
// still in the signup flow.
func (s *Service) SelectPlan(
	ctx context.Context,
	id, plan string,
) (*Account, error) {
	if !s.plans.IsKnown(plan) {
		return nil, fmt.Errorf(
			"select plan: unknown plan %q: %w",
			plan,
			core.ErrInvalidInput,
		)
	}

	acct, err := s.dir.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if acct.Status != StatusNew {
		return nil, fmt.Errorf(
			"select plan: account is not in signup flow: %w",
			core.ErrInvalidTransition,
		)
	}

	if acct.HasPlan() {
		return nil, fmt.Errorf(
			"select plan: plan already chosen: %w",
			core.ErrInvalidInput,
		)
	}

	return s.dir.UpdateProfile(ctx, id, ProfilePatch{Plan: &plan})
}

// SubmitContact stores the contact number and moves the account to pending
// review. The number is only ever set together with this transition, and a
// plan must already be chosen.
func (s *Service) SubmitContact(
	ctx context.Context,
	id, whatsapp string,
) (*Account, error) {
	acct, err := s.dir.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !acct.HasPlan() {
		return nil, fmt.Errorf(
			"submit contact: plan must be chosen first: %w",
			core.ErrInvalidInput,
		)
	}

	if !CanTransition(acct.Status, StatusPending) {
		return nil, fmt.Errorf(
			"submit contact: %s -> %s: %w",
			acct.Status,
			StatusPending,
			core.ErrInvalidTransition,
		)
	}

	pending := StatusPending
	return s.dir.UpdateProfile(ctx, id, ProfilePatch{
		WhatsApp: &whatsapp,
		Status:   &pending,
	})
}

// Moderation verbs used by the admin table. Each maps to one AdminAction
// target status; the Directory enforces the transition table and the
// admin-is-never-moderated rule.

func (s *Service) Approve(
	ctx context.Context,
	id string,
) (*Account, bool, error) {
	return s.dir.AdminAction(ctx, id, StatusActive, "")
}

func (s *Service) Reject(
	ctx context.Context,
	id, reason string,
) (*Account, bool, error) {
	return s.dir.AdminAction(ctx, id, StatusRejected, reason)
}

func (s *Service) Suspend(
	ctx context.Context,
	id string,
) (*Account, bool, error) {
	return s.dir.AdminAction(ctx, id, StatusSuspended, "")
}

func (s *Service) Reinstate(
	ctx context.Context,
	id string,
) (*Account, bool, error) {
	return s.dir.AdminAction(ctx, id, StatusActive, "")
}

// ListForModeration returns the moderation table rows: every non-admin
// account in signup order, optionally filtered by status, paginated.
func (s *Service) ListForModeration(
	ctx context.Context,
	params ListParams,
) ([]Account, int, error) {
	params.Normalize()

	all, err := s.dir.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]Account, 0, len(all))
	for _, acct := range all {
		if acct.IsAdmin() {
			continue
		}
		if params.Status != "" && acct.Status != params.Status {
			continue
		}
		filtered = append(filtered, acct)
	}

	total := len(filtered)

	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}

	return filtered[start:end], total, nil
}

type ListParams struct {
	Page     int
	PageSize int
	Status   string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

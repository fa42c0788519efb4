// AngelaMos | 2026
// entity.go

package account

import (
	"time"
)

// Account is a registered identity. Optional profile fields stay nil until
// the owner sets them, and are omitted from the persisted document so the
// serialized shape stays stable across load/save round trips.
type Account struct {
	ID              string    `json:"id"              db:"id"`
	Email           string    `json:"email"           db:"email"`
	WhatsApp        *string   `json:"whatsapp,omitempty" db:"whatsapp"`
	Plan            *string   `json:"plan,omitempty"     db:"plan"`
	Status          string    `json:"status"          db:"status"`
	Role            string    `json:"role"            db:"role"`
	RejectionReason *string   `json:"rejectionReason,omitempty" db:"rejection_reason"`
	CreatedAt       time.Time `json:"createdAt"       db:"created_at"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusNew       = "new"
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusRejected  = "rejected"
	StatusSuspended = "suspended"
)

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

func (a *Account) HasPlan() bool {
	return a.Plan != nil && *a.Plan != ""
}

// Clone returns a deep copy so callers can never mutate store-owned records
// through a returned pointer.
func (a *Account) Clone() *Account {
	clone := *a
	if a.WhatsApp != nil {
		v := *a.WhatsApp
		clone.WhatsApp = &v
	}
	if a.Plan != nil {
		v := *a.Plan
		clone.Plan = &v
	}
	if a.RejectionReason != nil {
		v := *a.RejectionReason
		clone.RejectionReason = &v
	}
	return &clone
}

func ValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusPending, StatusActive, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

// transitions is the approval lifecycle:
//
//	new -> pending -> {active <-> suspended}
//	pending -> rejected
//	{rejected, suspended} -> active
//
// "new" is only ever entered at signup.
var transitions = map[string][]string{
	StatusNew:       {StatusPending},
	StatusPending:   {StatusActive, StatusRejected},
	StatusActive:    {StatusSuspended},
	StatusSuspended: {StatusActive},
	StatusRejected:  {StatusActive},
}

func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

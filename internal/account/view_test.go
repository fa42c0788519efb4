// AngelaMos | 2026
// view_test.go

package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectScreen(t *testing.T) {
	plan := "monthly_500"

	tests := []struct {
		name string
		acct *Account
		nav  Nav
		want Screen
	}{
		{
			name: "logged out defaults to landing",
			acct: nil,
			nav:  NavNone,
			want: ScreenLanding,
		},
		{
			name: "logged out honors login intent",
			acct: nil,
			nav:  NavLogin,
			want: ScreenLogin,
		},
		{
			name: "logged out honors signup intent",
			acct: nil,
			nav:  NavSignup,
			want: ScreenSignup,
		},
		{
			name: "admin always lands on moderation",
			acct: &Account{Role: RoleAdmin, Status: StatusActive},
			nav:  NavLogin,
			want: ScreenAdmin,
		},
		{
			name: "new without plan picks plans",
			acct: &Account{Role: RoleUser, Status: StatusNew},
			nav:  NavNone,
			want: ScreenPlans,
		},
		{
			name: "new with plan picks contact",
			acct: &Account{Role: RoleUser, Status: StatusNew, Plan: &plan},
			nav:  NavNone,
			want: ScreenContact,
		},
		{
			name: "pending waits for review",
			acct: &Account{Role: RoleUser, Status: StatusPending, Plan: &plan},
			nav:  NavNone,
			want: ScreenPending,
		},
		{
			name: "rejected sees rejection",
			acct: &Account{Role: RoleUser, Status: StatusRejected, Plan: &plan},
			nav:  NavNone,
			want: ScreenRejected,
		},
		{
			name: "suspended sees suspension",
			acct: &Account{Role: RoleUser, Status: StatusSuspended, Plan: &plan},
			nav:  NavNone,
			want: ScreenSuspended,
		},
		{
			name: "active reaches dashboard",
			acct: &Account{Role: RoleUser, Status: StatusActive, Plan: &plan},
			nav:  NavNone,
			want: ScreenDashboard,
		},
		{
			name: "logged in ignores navigation intent",
			acct: &Account{Role: RoleUser, Status: StatusActive, Plan: &plan},
			nav:  NavSignup,
			want: ScreenDashboard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectScreen(tt.acct, tt.nav))
		})
	}
}

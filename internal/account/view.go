// AngelaMos | 2026
// view.go

package account

// Screen identifies which SPA screen the client should render. The server
// decides so every client agrees with the approval lifecycle.
type Screen string

const (
	ScreenLanding   Screen = "landing"
	ScreenLogin     Screen = "login"
	ScreenSignup    Screen = "signup"
	ScreenPlans     Screen = "plans"
	ScreenContact   Screen = "contact"
	ScreenPending   Screen = "pending"
	ScreenRejected  Screen = "rejected"
	ScreenSuspended Screen = "suspended"
	ScreenDashboard Screen = "dashboard"
	ScreenAdmin     Screen = "admin"
)

// Nav is the client's navigation intent, only honored while logged out.
type Nav string

const (
	NavNone   Nav = ""
	NavLogin  Nav = "login"
	NavSignup Nav = "signup"
)

// SelectScreen deterministically picks the screen for the given session
// state. Admins always land on the moderation table; everyone else follows
// their approval status through the signup funnel.
func SelectScreen(acct *Account, nav Nav) Screen {
	if acct == nil {
		switch nav {
		case NavLogin:
			return ScreenLogin
		case NavSignup:
			return ScreenSignup
		default:
			return ScreenLanding
		}
	}

	if acct.IsAdmin() {
		return ScreenAdmin
	}

	switch acct.Status {
	case StatusNew:
		if !acct.HasPlan() {
			return ScreenPlans
		}
		return ScreenContact
	case StatusPending:
		return ScreenPending
	case StatusRejected:
		return ScreenRejected
	case StatusSuspended:
		return ScreenSuspended
	case StatusActive:
		return ScreenDashboard
	default:
		return ScreenLanding
	}
}

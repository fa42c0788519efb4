// AngelaMos | 2026
// dto.go

package account

import (
	"time"
)

type SelectPlanRequest struct {
	Plan string `json:"plan" validate:"required,max=64"`
}

type SubmitContactRequest struct {
	WhatsApp string `json:"whatsapp" validate:"required,e164"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type AccountResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	WhatsApp        *string   `json:"whatsapp,omitempty"`
	Plan            *string   `json:"plan,omitempty"`
	Status          string    `json:"status"`
	Role            string    `json:"role"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ViewResponse struct {
	Screen  Screen           `json:"screen"`
	Account *AccountResponse `json:"account,omitempty"`
}

func ToAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:              a.ID,
		Email:           a.Email,
		WhatsApp:        a.WhatsApp,
		Plan:            a.Plan,
		Status:          a.Status,
		Role:            a.Role,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
	}
}

func ToAccountResponseList(accounts []Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, ToAccountResponse(&a))
	}
	return responses
}

// AngelaMos | 2026
// dto.go

package auth

import (
	"time"

	"github.com/azzedinedj/winner-product-inno/internal/account"
)

type SignupRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AuthResponse struct {
	Account account.AccountResponse `json:"account"`
	Tokens  TokenResponse           `json:"tokens"`
}

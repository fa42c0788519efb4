// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/azzedinedj/winner-product-inno/internal/account"
	"github.com/azzedinedj/winner-product-inno/internal/core"
	"github.com/azzedinedj/winner-product-inno/internal/middleware"
)

var (
	// ErrUnknownEmail is the login failure: no account carries the email.
	// Deliberately not a credential error, because there are no credentials
	// in this system; login is lookup by email.
	ErrUnknownEmail = errors.New("no account with this email")
)

// Service turns account lookups into sessions. Login and signup both
// authenticate; logout denylists the token until its natural expiry so a
// stateless JWT can still be killed server-side.
type Service struct {
	accounts *account.Service
	jwt      *JWTManager
	redis    *redis.Client
}

func NewService(
	accounts *account.Service,
	jwt *JWTManager,
	redisClient *redis.Client,
) *Service {
	return &Service{
		accounts: accounts,
		jwt:      jwt,
		redis:    redisClient,
	}
}

// Signup creates the account and immediately authenticates it, matching
// the SPA flow where a fresh signup lands on the plans screen.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*AuthResponse, error) {
	acct, err := s.accounts.Signup(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	return s.createAuthResponse(acct)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	acct, found, err := s.accounts.Login(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if !found {
		return nil, ErrUnknownEmail
	}

	return s.createAuthResponse(acct)
}

// Logout denylists the presented token's jti. The entry outlives the token
// by at most the full access-token lifetime, then expires on its own. The
// account collection is never touched.
func (s *Service) Logout(ctx context.Context, jti string) error {
	key := "denylist:" + jti
	ttl := s.jwt.config.AccessTokenExpire

	if err := s.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist token: %w", err)
	}

	return nil
}

func (s *Service) GetCurrentAccount(
	ctx context.Context,
	userID string,
) (*account.Account, error) {
	return s.accounts.Get(ctx, userID)
}

// VerifyAccessToken checks the signature, then the denylist.
// Implements middleware.TokenVerifier.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}

	denied, err := s.redis.Exists(ctx, "denylist:"+claims.JTI).Result()
	if err != nil {
		return nil, fmt.Errorf("check denylist: %w", err)
	}

	if denied > 0 {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func (s *Service) createAuthResponse(
	acct *account.Account,
) (*AuthResponse, error) {
	issued, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: acct.ID,
		Role:   acct.Role,
		Status: acct.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &AuthResponse{
		Account: account.ToAccountResponse(acct),
		Tokens: TokenResponse{
			AccessToken: issued.Token,
			TokenType:   "Bearer",
			ExpiresIn:   int(time.Until(issued.ExpiresAt) / time.Second),
			ExpiresAt:   issued.ExpiresAt,
		},
	}, nil
}

var _ middleware.TokenVerifier = (*Service)(nil)

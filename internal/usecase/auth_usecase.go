package usecase

import (
	"context"
	"crypto/subtle"
	"strings"

	"talentmatch-backend/config"
	"talentmatch-backend/internal/domain"
	"talentmatch-backend/pkg/apperror"
	"talentmatch-backend/pkg/auth"
)

type authUsecase struct {
	cfg    *config.Config
	tokens *auth.TokenManager
}

func NewAuthUsecase(cfg *config.Config, tokens *auth.TokenManager) domain.AuthUsecase {
	return &authUsecase{cfg: cfg, tokens: tokens}
}

// Login checks the configured recruiter credentials and issues a session
// token. Comparison is constant time.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if u.cfg.AdminEmail == "" || u.cfg.AdminPassword == "" || u.cfg.JWTSecret == "" {
		return "", apperror.Unauthorized("Login is not configured")
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(u.cfg.AdminEmail)))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(u.cfg.AdminPassword))
	if emailOK&passOK != 1 {
		return "", apperror.Unauthorized("Invalid email or password")
	}

	token, err := u.tokens.Issue(email)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

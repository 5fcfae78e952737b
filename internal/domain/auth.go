package domain

import "context"

// AuthUsecase validates recruiter credentials and issues session tokens.
type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (string, error)
}

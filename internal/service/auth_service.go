package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"autohaus-service/internal/auth"
	"autohaus-service/internal/model"
)

// AdminStore is the persistence surface for operator accounts.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
}

type AuthService struct {
	admins AdminStore
	issuer *auth.Issuer
}

func NewAuthService(admins AdminStore, issuer *auth.Issuer) *AuthService {
	return &AuthService{
		admins: admins,
		issuer: issuer,
	}
}

// Login verifies operator credentials and issues a bearer token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidInput
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.VerifyPassword(password, admin.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(admin.ID, admin.Username)
	if err != nil {
		return "", err
	}
	return token, nil
}

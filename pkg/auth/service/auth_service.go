package service

import (
	"errors"

	"cultivapp/entities"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims is the identity extracted from a verified token.
type Claims struct {
	UserID uint
	Role   entities.Role
}

type AuthService interface {
	Register(email, name, password string) (*entities.User, error)
	// Login returns a signed bearer token for valid credentials.
	Login(email, password string) (string, *entities.User, error)
	Verify(token string) (*Claims, error)
}

package auth

import "errors"

var (
	ErrNotFound           = errors.New("auth: account not found")
	ErrInvalidToken       = errors.New("auth: invalid token")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

const defaultTokenTTL = 15 * time.Minute

// Service ties token signing to the account store: it issues tokens for
// valid credentials, resolves bearer tokens back to live accounts, and
// performs the admin-side account removal.
type Service struct {
	tokens   *Tokens
	accounts AccountStore
	tokenTTL time.Duration
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithTokenTTL overrides the default access token lifetime.
func WithTokenTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// NewService constructs the auth service.
func NewService(tokens *Tokens, accounts AccountStore, opts ...ServiceOption) (*Service, error) {
	if tokens == nil {
		return nil, errors.New("token signer is required")
	}
	if accounts == nil {
		return nil, errors.New("account store is required")
	}
	s := &Service{tokens: tokens, accounts: accounts, tokenTTL: defaultTokenTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Login verifies credentials and issues an access token for the account.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", time.Time{}, Account{}, ErrInvalidCredentials
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", time.Time{}, Account{}, ErrInvalidCredentials
		}
		return "", time.Time{}, Account{}, err
	}
	if account.Status != AccountStatusActive {
		return "", time.Time{}, Account{}, ErrInvalidCredentials
	}
	if err := VerifyPassword(account.PasswordHash, password); err != nil {
		return "", time.Time{}, Account{}, ErrInvalidCredentials
	}
	token, expiresAt, err := s.tokens.Generate(account.ID, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, Account{}, err
	}
	return token, expiresAt, *account, nil
}

// VerifyToken validates the bearer token and confirms the subject account
// still exists. A token for a deleted account is invalid.
func (s *Service) VerifyToken(ctx context.Context, token string) (Account, error) {
	claims, err := s.tokens.ParseAndValidate(token)
	if err != nil {
		return Account{}, ErrInvalidToken
	}
	account, err := s.accounts.Find(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidToken
		}
		return Account{}, err
	}
	return *account, nil
}

// DeleteAccount removes the account identified by id. ErrNotFound passes
// through untouched so callers can treat repeat deletions as idempotent.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.accounts.Delete(ctx, id)
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubAccountStore struct {
	findFn        func(context.Context, string) (*Account, error)
	findByEmailFn func(context.Context, string) (*Account, error)
	deleteFn      func(context.Context, string) error
}

func (s *stubAccountStore) Find(ctx context.Context, id string) (*Account, error) {
	if s.findFn != nil {
		return s.findFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (s *stubAccountStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	if s.findByEmailFn != nil {
		return s.findByEmailFn(ctx, email)
	}
	return nil, ErrNotFound
}

func (s *stubAccountStore) Create(ctx context.Context, account *Account) error { return nil }

func (s *stubAccountStore) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func newTestService(t *testing.T, store AccountStore) *Service {
	t.Helper()
	tokens, err := NewTokens("test-secret")
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	svc, err := NewService(tokens, store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestLoginIssuesTokenForActiveAccount(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	store := &stubAccountStore{
		findByEmailFn: func(_ context.Context, email string) (*Account, error) {
			if email != "ada@example.com" {
				t.Fatalf("unexpected email lookup: %s", email)
			}
			return &Account{ID: "acct-1", Email: email, PasswordHash: hash, Status: AccountStatusActive}, nil
		},
		findFn: func(_ context.Context, id string) (*Account, error) {
			return &Account{ID: id, Status: AccountStatusActive}, nil
		},
	}
	svc := newTestService(t, store)

	token, expiresAt, account, err := svc.Login(context.Background(), "  Ada@Example.com ", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if account.ID != "acct-1" {
		t.Fatalf("unexpected account id: %s", account.ID)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("unexpected expiry: %v", expiresAt)
	}

	verified, err := svc.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if verified.ID != "acct-1" {
		t.Fatalf("unexpected verified account: %s", verified.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, _ := HashPassword("s3cret")
	store := &stubAccountStore{
		findByEmailFn: func(_ context.Context, _ string) (*Account, error) {
			return &Account{ID: "acct-1", PasswordHash: hash, Status: AccountStatusActive}, nil
		},
	}
	svc := newTestService(t, store)

	if _, _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	hash, _ := HashPassword("s3cret")
	store := &stubAccountStore{
		findByEmailFn: func(_ context.Context, _ string) (*Account, error) {
			return &Account{ID: "acct-1", PasswordHash: hash, Status: AccountStatusDisabled}, nil
		},
	}
	svc := newTestService(t, store)

	if _, _, _, err := svc.Login(context.Background(), "ada@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyTokenRejectsDeletedAccount(t *testing.T) {
	store := &stubAccountStore{
		findByEmailFn: func(_ context.Context, _ string) (*Account, error) {
			hash, _ := HashPassword("s3cret")
			return &Account{ID: "acct-1", PasswordHash: hash, Status: AccountStatusActive}, nil
		},
	}
	svc := newTestService(t, store)

	token, _, _, err := svc.Login(context.Background(), "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Account has since been removed; the store now reports not found.
	store.findFn = func(_ context.Context, _ string) (*Account, error) {
		return nil, ErrNotFound
	}
	if _, err := svc.VerifyToken(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDeleteAccountPassesThroughNotFound(t *testing.T) {
	store := &stubAccountStore{
		deleteFn: func(_ context.Context, id string) error {
			return ErrNotFound
		},
	}
	svc := newTestService(t, store)

	if err := svc.DeleteAccount(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

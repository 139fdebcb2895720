package auth

import "context"

type accountContextKey struct{}

// ContextWithAccount attaches the authenticated account to the context.
func ContextWithAccount(ctx context.Context, account Account) context.Context {
	return context.WithValue(ctx, accountContextKey{}, &account)
}

// AccountFromContext extracts the authenticated account from the context.
func AccountFromContext(ctx context.Context) (Account, bool) {
	if ctx == nil {
		return Account{}, false
	}
	v, ok := ctx.Value(accountContextKey{}).(*Account)
	if !ok || v == nil {
		return Account{}, false
	}
	return *v, true
}

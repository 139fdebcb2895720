package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"staffhub.org/internal/auth"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// bearerToken pulls the raw token from the Authorization header. Missing or
// malformed headers yield an empty string.
func bearerToken(r *http.Request) string {
	token, err := extractBearerToken(r.Header.Get(authHeader))
	if err != nil {
		return ""
	}
	return token
}

// requireAccount authenticates the caller and writes a 401 on failure. On
// success it returns the request with the account attached to its context,
// so downstream audit events carry the acting account id.
func (a *API) requireAccount(w http.ResponseWriter, r *http.Request) (auth.Account, *http.Request, bool) {
	if a.auth == nil {
		writeError(w, r, http.StatusServiceUnavailable, "auth service unavailable")
		return auth.Account{}, r, false
	}
	token, err := extractBearerToken(r.Header.Get(authHeader))
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, err.Error())
		return auth.Account{}, r, false
	}
	account, err := a.auth.VerifyToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			writeError(w, r, http.StatusUnauthorized, "invalid token")
		default:
			writeError(w, r, http.StatusInternalServerError, "authentication error")
		}
		return auth.Account{}, r, false
	}
	r = r.WithContext(auth.ContextWithAccount(r.Context(), account))
	return account, r, true
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

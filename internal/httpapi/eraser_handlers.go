package httpapi

import (
	"errors"
	"net/http"

	"staffhub.org/internal/eraser"
	"staffhub.org/internal/obs"
)

type deleteUserRequest struct {
	UserID string `json:"userId"`
}

type deleteUserResponse struct {
	Success        bool `json:"success"`
	AlreadyDeleted bool `json:"alreadyDeleted,omitempty"`
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	// Any panic below must still produce a JSON error response.
	defer func() {
		if rec := recover(); rec != nil {
			obs.LogEvent(map[string]any{
				"level": "error",
				"msg":   "delete user panicked",
				"panic": rec,
			})
			writeError(w, r, http.StatusInternalServerError, "internal error")
		}
	}()

	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if a.eraser == nil {
		writeError(w, r, http.StatusServiceUnavailable, "eraser unavailable")
		return
	}
	// A malformed body must not shadow the authorization ladder: the
	// decode error is held back so an unauthenticated or forbidden caller
	// still sees 401/403, and the target id from a body that failed to
	// decode cleanly is never acted on.
	var req deleteUserRequest
	decErr := decodeJSON(w, r, &req)
	if decErr != nil {
		req = deleteUserRequest{}
	}

	result, err := a.eraser.Delete(r.Context(), bearerToken(r), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, eraser.ErrUnauthenticated):
			writeError(w, r, http.StatusUnauthorized, err.Error())
		case errors.Is(err, eraser.ErrForbidden):
			writeError(w, r, http.StatusForbidden, err.Error())
		case errors.Is(err, eraser.ErrInvalidRequest):
			if decErr != nil {
				writeError(w, r, http.StatusBadRequest, decErr.Error())
				return
			}
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, eraser.ErrDeletionFailed):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			writeError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, deleteUserResponse{
		Success:        true,
		AlreadyDeleted: result.AlreadyDeleted,
	})
}

package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"staffhub.org/internal/audit"
	"staffhub.org/internal/holidays"
	"staffhub.org/internal/storage"
)

func (a *API) handleHolidays(w http.ResponseWriter, r *http.Request) {
	if a.holidays == nil {
		writeError(w, r, http.StatusServiceUnavailable, "holidays unavailable")
		return
	}
	switch r.Method {
	case http.MethodGet:
		list, err := a.holidays.List(r.Context())
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "list holidays failed")
			return
		}
		if list == nil {
			list = []holidays.Holiday{}
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		account, r, ok := a.requireAccount(w, r)
		if !ok {
			return
		}
		var in holidays.Input
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h, err := a.holidays.Create(r.Context(), account.ID, in)
		if err != nil {
			handleHolidayError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "holiday.create", map[string]any{
			"holiday_id": h.ID,
			"title":      h.Title,
		})
		w.Header().Set("Location", "/v1/holidays/"+h.ID)
		writeJSON(w, http.StatusCreated, h)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleHolidayByID(w http.ResponseWriter, r *http.Request) {
	if a.holidays == nil {
		writeError(w, r, http.StatusServiceUnavailable, "holidays unavailable")
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/holidays/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		_, r, ok := a.requireAccount(w, r)
		if !ok {
			return
		}
		var in holidays.Input
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		h, err := a.holidays.Update(r.Context(), id, in)
		if err != nil {
			handleHolidayError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "holiday.update", map[string]any{
			"holiday_id": h.ID,
		})
		writeJSON(w, http.StatusOK, h)
	case http.MethodDelete:
		_, r, ok := a.requireAccount(w, r)
		if !ok {
			return
		}
		if err := a.holidays.Delete(r.Context(), id); err != nil {
			handleHolidayError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "holiday.delete", map[string]any{
			"holiday_id": id,
		})
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) handleHolidayImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if a.images == nil {
		writeError(w, r, http.StatusServiceUnavailable, "image storage unavailable")
		return
	}
	_, r, ok := a.requireAccount(w, r)
	if !ok {
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	url, err := a.images.Save(file, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTooLarge):
			writeError(w, r, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, storage.ErrNotAnImage), errors.Is(err, storage.ErrEmptyUpload):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			writeError(w, r, http.StatusInternalServerError, "store image failed")
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"url": url})
}

func handleHolidayError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, holidays.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, holidays.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "holiday not found")
	default:
		writeError(w, r, http.StatusInternalServerError, "holiday operation failed")
	}
}

package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"staffhub.org/internal/auth"
	"staffhub.org/internal/eraser"
	"staffhub.org/internal/holidays"
	"staffhub.org/internal/obs"
	"staffhub.org/internal/staff"
	"staffhub.org/internal/storage"
)

// ReadyProbe reports whether downstream dependencies are reachable.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	resolver *staff.Resolver
	eraser   *eraser.Eraser
	auth     *auth.Service
	holidays *holidays.Service
	images   *storage.Images

	rateBurst  int
	ratePerSec int
}

type Options struct {
	Ready    ReadyProbe
	Version  string
	Resolver *staff.Resolver
	Eraser   *eraser.Eraser
	Auth     *auth.Service
	Holidays *holidays.Service
	Images   *storage.Images

	RateBurst  int
	RatePerSec int
}

func New(opts Options) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: opts.Ready,
		version:    opts.Version,
		resolver:   opts.Resolver,
		eraser:     opts.Eraser,
		auth:       opts.Auth,
		holidays:   opts.Holidays,
		images:     opts.Images,
		rateBurst:  opts.RateBurst,
		ratePerSec: opts.RatePerSec,
	}

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)

	a.mux.HandleFunc("/v1/auth/login", a.handleLogin)
	a.mux.HandleFunc("/v1/profiles/", a.handleProfile)
	a.mux.HandleFunc("/v1/users/delete", a.handleDeleteUser)
	a.mux.HandleFunc("/v1/holidays", a.handleHolidays)
	a.mux.HandleFunc("/v1/holidays/images", a.handleHolidayImage)
	a.mux.HandleFunc("/v1/holidays/", a.handleHolidayByID)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	if a.images != nil {
		a.mux.Handle("/images/", http.StripPrefix("/images/", a.images.Handler()))
	}

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler assembles the middleware chain around the mux.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = MaxBodyBytes(h, storage.MaxImageBytes+1<<20)
	if a.rateBurst > 0 && a.ratePerSec > 0 {
		h = RateLimit(h, a.rateBurst, a.ratePerSec)
	}
	h = corsHandler(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func corsHandler(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		MaxAge:         600,
	})(next)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "staffhub-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if a.resolver == nil {
		writeError(w, r, http.StatusServiceUnavailable, "resolver unavailable")
		return
	}
	identifier := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/profiles/"), "/")
	res := a.resolver.Resolve(r.Context(), identifier)
	writeJSON(w, http.StatusOK, res)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

package eraser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"staffhub.org/internal/audit"
	"staffhub.org/internal/auth"
	"staffhub.org/internal/obs"
	"staffhub.org/internal/staff"
)

// CleanupTask pairs a dependent table with the column referencing the
// account being erased.
type CleanupTask struct {
	Table  string
	Column string
}

// DefaultCleanupPlan lists every collection holding foreign-key-like
// references to an account. The tables are disjoint, so the tasks carry no
// relative ordering; only the final account removal must come after all of
// them.
var DefaultCleanupPlan = []CleanupTask{
	{Table: "leads", Column: "created_by"},
	{Table: "tasks", Column: "assigned_to"},
	{Table: "leaves", Column: "user_id"},
	{Table: "projects", Column: "created_by"},
	{Table: "announcements", Column: "created_by"},
	{Table: "activity_logs", Column: "user_id"},
}

// TokenVerifier resolves a bearer token to the calling account.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (auth.Account, error)
}

// RoleFinder looks up the role assignment for an account.
type RoleFinder interface {
	FindRole(ctx context.Context, accountID string) (string, error)
}

// CleanupStore deletes dependent rows matching an account id.
type CleanupStore interface {
	DeleteWhere(ctx context.Context, table, column, accountID string) (int64, error)
}

// AccountAdmin removes the account itself. It reports auth.ErrNotFound when
// the account was already gone.
type AccountAdmin interface {
	DeleteAccount(ctx context.Context, id string) error
}

// Result describes a successful erasure.
type Result struct {
	AlreadyDeleted bool `json:"alreadyDeleted,omitempty"`
}

// Eraser removes an account and every dependent record referencing it.
// Dependent cleanup is best-effort: there is no transaction spanning the
// collections and no compensation on partial failure.
type Eraser struct {
	verifier TokenVerifier
	roles    RoleFinder
	cleanup  CleanupStore
	accounts AccountAdmin
	plan     []CleanupTask
}

// Option configures an Eraser.
type Option func(*Eraser)

// WithCleanupPlan overrides the default cleanup plan.
func WithCleanupPlan(plan []CleanupTask) Option {
	return func(e *Eraser) {
		if len(plan) > 0 {
			e.plan = plan
		}
	}
}

// New constructs an Eraser.
func New(verifier TokenVerifier, roles RoleFinder, cleanup CleanupStore, accounts AccountAdmin, opts ...Option) (*Eraser, error) {
	if verifier == nil || roles == nil || cleanup == nil || accounts == nil {
		return nil, errors.New("eraser: all collaborators are required")
	}
	e := &Eraser{
		verifier: verifier,
		roles:    roles,
		cleanup:  cleanup,
		accounts: accounts,
		plan:     DefaultCleanupPlan,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Delete authorizes the caller and erases targetID. Authorization failures
// short-circuit before any destructive call. Once the destructive phase
// starts it runs to completion; the caller's ctx no longer cancels it.
func (e *Eraser) Delete(ctx context.Context, token, targetID string) (Result, error) {
	if strings.TrimSpace(token) == "" {
		return Result{}, fmt.Errorf("%w: no authorization token", ErrUnauthenticated)
	}
	caller, err := e.verifier.VerifyToken(ctx, token)
	if err != nil {
		return Result{}, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	// Absence of a role assignment, any other role, and a failed role
	// lookup are all denials.
	role, err := e.roles.FindRole(ctx, caller.ID)
	if err != nil || role != staff.RoleAdmin {
		return Result{}, fmt.Errorf("%w: only admins can delete accounts", ErrForbidden)
	}

	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return Result{}, fmt.Errorf("%w: userId is required", ErrInvalidRequest)
	}

	ctx = context.WithoutCancel(ctx)
	removed := e.cleanupDependents(ctx, targetID)

	err = e.accounts.DeleteAccount(ctx, targetID)
	switch {
	case err == nil:
		obs.CountAccountDeletion("success")
		_ = audit.LogEvent(ctx, "account.delete", map[string]any{
			"target_id": targetID, "caller_id": caller.ID, "removed": removed,
		})
		return Result{}, nil
	case errors.Is(err, auth.ErrNotFound):
		// Already removed, e.g. by a concurrent or retried call. Dependent
		// cleanup above still ran; report success.
		obs.CountAccountDeletion("already_deleted")
		_ = audit.LogEvent(ctx, "account.delete", map[string]any{
			"target_id": targetID, "caller_id": caller.ID, "removed": removed, "already_deleted": true,
		})
		return Result{AlreadyDeleted: true}, nil
	default:
		obs.CountAccountDeletion("failed")
		return Result{}, fmt.Errorf("%w: %v", ErrDeletionFailed, err)
	}
}

// cleanupDependents fans the plan out concurrently and joins before
// returning. A failed task is logged and does not stop the others.
func (e *Eraser) cleanupDependents(ctx context.Context, targetID string) map[string]int64 {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		removed = make(map[string]int64, len(e.plan))
	)
	for _, task := range e.plan {
		wg.Add(1)
		go func(task CleanupTask) {
			defer wg.Done()
			n, err := e.cleanup.DeleteWhere(ctx, task.Table, task.Column, targetID)
			if err != nil {
				obs.LogEvent(map[string]any{
					"level": "warn", "msg": "dependent cleanup failed",
					"table": task.Table, "target_id": targetID, "error": err.Error(),
				})
				return
			}
			mu.Lock()
			removed[task.Table] = n
			mu.Unlock()
		}(task)
	}
	wg.Wait()
	return removed
}

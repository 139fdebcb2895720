package staff

import (
	"context"
	"errors"
	"regexp"

	"staffhub.org/internal/obs"
)

// RFC-4122 v1-v5, case-insensitive. Anything else is treated as a human
// login id.
var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsUUID reports whether the identifier is UUID-shaped.
func IsUUID(identifier string) bool {
	return uuidPattern.MatchString(identifier)
}

// Resolver maps a loosely-typed identifier (account UUID or human login id)
// to a profile and role, memoizing the result under every alias observed.
type Resolver struct {
	dir   Directory
	cache Cache
}

// NewResolver constructs a Resolver around a directory and a cache.
func NewResolver(dir Directory, cache Cache) (*Resolver, error) {
	if dir == nil {
		return nil, errors.New("directory is required")
	}
	if cache == nil {
		return nil, errors.New("cache is required")
	}
	return &Resolver{dir: dir, cache: cache}, nil
}

// Resolve returns the profile and role for the identifier. Lookup failures
// never propagate: the result degrades to an absent profile and the "staff"
// role, with the failure logged. Concurrent first resolutions of the same
// identifier may race and perform redundant lookups; subsequent calls hit
// the cache.
//
// The caller's ctx is advisory only. Once a resolution starts, its lookups
// and the cache population complete even if the caller has gone away, so an
// abandoned request still warms the cache.
func (r *Resolver) Resolve(ctx context.Context, identifier string) Resolution {
	if identifier == "" {
		return Resolution{Profile: nil, Role: RoleStaff}
	}

	if res, ok := r.cache.Get(ctx, identifier); ok {
		obs.CountResolverLookup("cache")
		return res
	}
	obs.CountResolverLookup("store")

	ctx = context.WithoutCancel(ctx)

	var profile *Profile
	var err error
	if IsUUID(identifier) {
		profile, err = r.dir.FindProfileByID(ctx, identifier)
	} else {
		profile, err = r.dir.FindProfileByLoginID(ctx, identifier)
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		obs.LogEvent(map[string]any{
			"level": "warn", "msg": "profile lookup failed",
			"identifier": identifier, "error": err.Error(),
		})
		profile = nil
	}

	role := RoleStaff
	if profile != nil {
		role, err = r.dir.FindRole(ctx, profile.ID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				obs.LogEvent(map[string]any{
					"level": "warn", "msg": "role lookup failed",
					"account_id": profile.ID, "error": err.Error(),
				})
			}
			role = RoleStaff
		}
		if role == "" {
			role = RoleStaff
		}
	}

	res := Resolution{Profile: profile, Role: role}

	// Populate under every alias that refers to this profile so a later
	// lookup by any of them is a hit.
	keys := map[string]struct{}{identifier: {}}
	if profile != nil {
		keys[profile.ID] = struct{}{}
		if profile.LoginID != "" {
			keys[profile.LoginID] = struct{}{}
		}
	}
	for key := range keys {
		r.cache.Set(ctx, key, res)
	}

	return res
}

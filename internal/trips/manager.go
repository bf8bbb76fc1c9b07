// Package trips manages the client's cached trip collection: fetching it
// from the backend, appending newly created trips, folding in matched-flag
// updates, and deriving the subset visible to the current user.
package trips

import (
	"context"
	"fmt"

	"github.com/hoppin-app/hoppin-go/internal/domain"
)

// TripAPI is the subset of the backend client the manager depends on.
type TripAPI interface {
	ListAllTrips(ctx context.Context, token string) ([]domain.Trip, error)
	ListMyTrips(ctx context.Context, token string) ([]domain.Trip, error)
	CreateTrip(ctx context.Context, token string, draft domain.TripDraft) (domain.Trip, error)
	ToggleMatched(ctx context.Context, token, tripID string) (domain.Trip, error)
}

// Manager owns the in-memory trip cache. All mutations run to completion
// before the next one starts (single-threaded, event-driven model), so the
// cache needs no locking.
type Manager struct {
	api   TripAPI
	cache []domain.Trip
}

// NewManager constructs a Manager with an empty cache.
func NewManager(api TripAPI) *Manager {
	return &Manager{api: api, cache: []domain.Trip{}}
}

// Refresh replaces the cache with the backend's view for the given session.
// Anonymous sessions get an empty cache without any network call. Admins
// fetch all trips, everyone else their own. On fetch failure the cache is
// cleared and the error is returned for the caller to surface.
func (m *Manager) Refresh(ctx context.Context, user *domain.User) error {
	if user == nil || user.Token == "" {
		m.cache = []domain.Trip{}
		return nil
	}

	var (
		fetched []domain.Trip
		err     error
	)
	if user.IsAdmin {
		fetched, err = m.api.ListAllTrips(ctx, user.Token)
	} else {
		fetched, err = m.api.ListMyTrips(ctx, user.Token)
	}
	if err != nil {
		m.cache = []domain.Trip{}
		return err
	}
	// A nil or non-array response decodes to a nil slice; coerce to empty.
	if fetched == nil {
		fetched = []domain.Trip{}
	}
	m.cache = fetched
	return nil
}

// Create sends the draft to the backend and appends the returned canonical
// Trip to the cache — append rather than re-fetch, so the one new record
// costs one request. Requires an authenticated session; fails fast otherwise.
func (m *Manager) Create(ctx context.Context, user *domain.User, draft domain.TripDraft) (domain.Trip, error) {
	if user == nil || user.Token == "" {
		return domain.Trip{}, fmt.Errorf("%w to create a trip", domain.ErrUnauthenticated)
	}
	created, err := m.api.CreateTrip(ctx, user.Token, draft)
	if err != nil {
		return domain.Trip{}, err
	}
	m.cache = append(m.cache, created)
	return created, nil
}

// ToggleMatched flips the matched flag of one trip and replaces exactly that
// record in the cache with the backend's returned representation. All other
// records and their order are untouched. On failure the cache is unchanged.
func (m *Manager) ToggleMatched(ctx context.Context, user *domain.User, tripID string) (domain.Trip, error) {
	if user == nil || user.Token == "" {
		return domain.Trip{}, fmt.Errorf("%w to modify a trip", domain.ErrUnauthenticated)
	}
	updated, err := m.api.ToggleMatched(ctx, user.Token, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	for i := range m.cache {
		if m.cache[i].ID == tripID {
			m.cache[i] = updated
			break
		}
	}
	return updated, nil
}

// Visible derives the trips the given session may see: everything for an
// admin, only the user's own trips otherwise, and nothing when anonymous.
// Order follows the cache. The result is always a fresh non-nil slice.
func (m *Manager) Visible(user *domain.User) []domain.Trip {
	if user == nil {
		return []domain.Trip{}
	}
	if user.IsAdmin {
		out := make([]domain.Trip, len(m.cache))
		copy(out, m.cache)
		return out
	}
	out := []domain.Trip{}
	for _, t := range m.cache {
		if t.UserID == user.ID {
			out = append(out, t)
		}
	}
	return out
}

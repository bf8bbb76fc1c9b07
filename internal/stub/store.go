// Package stub is an in-memory double of the Hoppin backend, faithful to the
// contract the client consumes: endpoint paths, wire field names, and the
// exact error messages the client's auth-rejection detector matches. It
// backs integration tests and local development; it is not a production
// server and stores nothing durably.
package stub

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hoppin-app/hoppin-go/internal/domain"
)

// account pairs a user record with its password hash. The stored User never
// carries a token; tokens are minted per login.
type account struct {
	user         domain.User
	passwordHash []byte
}

// memoryStore holds all stub state behind one mutex. Unlike the client's
// single-threaded core, the stub serves concurrent HTTP requests.
type memoryStore struct {
	mu      sync.Mutex
	byID    map[string]*account
	byEmail map[string]string // lowercased email -> user id
	trips   []domain.Trip
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		byID:    make(map[string]*account),
		byEmail: make(map[string]string),
	}
}

// CreateUser registers an account, rejecting duplicate emails.
func (m *memoryStore) CreateUser(reg domain.Registration, isAdmin bool) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(reg.Email)
	if _, exists := m.byEmail[key]; exists {
		return domain.User{}, fmt.Errorf("%w: a user with this email already exists", domain.ErrValidation)
	}

	user := domain.User{
		ID:              uuid.NewString(),
		Email:           reg.Email,
		Phone:           reg.Phone,
		FirstName:       reg.FirstName,
		LastName:        reg.LastName,
		IsAdmin:         isAdmin,
		WhatsappConsent: reg.WhatsappConsent,
	}
	m.byID[user.ID] = &account{user: user, passwordHash: hash}
	m.byEmail[key] = user.ID
	return user, nil
}

// Authenticate checks credentials and returns the matching user.
func (m *memoryStore) Authenticate(email, password string) (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.User{}, false
	}
	acc := m.byID[id]
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return domain.User{}, false
	}
	return acc.user, true
}

// UserByID looks up a user for token verification.
func (m *memoryStore) UserByID(id string) (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.byID[id]
	if !ok {
		return domain.User{}, false
	}
	return acc.user, true
}

// AddTrip stores a trip from a validated draft, denormalizing the owner's
// identity the way the real backend does.
func (m *memoryStore) AddTrip(owner domain.User, draft domain.TripDraft) domain.Trip {
	m.mu.Lock()
	defer m.mu.Unlock()

	trip := domain.Trip{
		ID:                uuid.NewString(),
		UserID:            owner.ID,
		UserName:          owner.FullName(),
		UserEmail:         owner.Email,
		UserPhone:         owner.Phone,
		Role:              draft.Role,
		DepartureLocation: draft.DepartureLocation,
		ArrivalLocation:   draft.ArrivalLocation,
		Date:              draft.Date,
		ArrivalTime:       draft.ArrivalTime,
		Recurrence:        draft.Recurrence,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	}
	if draft.Recurrence == domain.RecurrenceCustom {
		trip.RecurringDays = append([]string(nil), draft.RecurringDays...)
	}
	m.trips = append(m.trips, trip)
	return trip
}

// AllTrips returns every trip in insertion order.
func (m *memoryStore) AllTrips() []domain.Trip {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Trip, len(m.trips))
	copy(out, m.trips)
	return out
}

// TripsByUser returns the trips owned by the given user, in insertion order.
func (m *memoryStore) TripsByUser(userID string) []domain.Trip {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.Trip{}
	for _, t := range m.trips {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// ToggleMatched flips the matched flag of one trip and returns the updated
// record. Returns domain.ErrNotFound for an unknown id.
func (m *memoryStore) ToggleMatched(tripID string) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.trips {
		if m.trips[i].ID == tripID {
			m.trips[i].IsMatched = !m.trips[i].IsMatched
			return m.trips[i], nil
		}
	}
	return domain.Trip{}, domain.ErrNotFound
}

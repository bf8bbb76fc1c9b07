// Package session owns the authenticated user identity: obtaining it via
// login or registration, persisting it across restarts, and destroying it
// on logout. All other packages read session state through the Store; only
// the Store writes the durable record.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hoppin-app/hoppin-go/internal/domain"
)

// Storage persists the session User as a single JSON file. Absence and parse
// failure are both normalized to "no stored session" — restoring never fails.
type Storage struct {
	path string
}

// NewStorage returns a Storage writing to the given file path. Parent
// directories are created on first save.
func NewStorage(path string) *Storage {
	return &Storage{path: path}
}

// Load reads the persisted User. It returns nil when the file is absent,
// unreadable, malformed, or holds a record without a token — a stored
// session is only as good as the bearer token inside it.
func (s *Storage) Load() *domain.User {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil
	}
	if user.Token == "" {
		return nil
	}
	return &user
}

// Save writes the User record, replacing any previous one.
func (s *Storage) Save(user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	// 0600: the file contains a bearer token.
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear removes the persisted record. Clearing an already-absent record is
// not an error, so logout stays idempotent.
func (s *Storage) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

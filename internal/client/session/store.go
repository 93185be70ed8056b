// Package session holds the client's current identity and token, persisted
// to a single file so the session survives restarts. The store is explicit
// state passed to views; nothing reads it ambiently.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// User is the denormalized identity kept alongside the token. It mirrors
// the login response body and is not re-validated on every read.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Token    string `json:"token"`
}

type state struct {
	User User `json:"user"`
}

// Store is a file-backed session holder: read at startup, written on every
// change.
type Store struct {
	path string
	user User
}

// Load reads the session file at path. A missing or corrupt file yields an
// anonymous session rather than an error.
func Load(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return s
	}
	s.user = st.User
	return s
}

// User returns the current session identity.
func (s *Store) User() User { return s.user }

// Token returns the stored bearer token, empty when anonymous.
func (s *Store) Token() string { return s.user.Token }

// LoggedIn reports whether a token is present. Presence only; validity is
// checked by the public-layout guard, not here.
func (s *Store) LoggedIn() bool { return s.user.Token != "" }

// Set replaces the session identity and persists immediately.
func (s *Store) Set(u User) error {
	s.user = u
	return s.save()
}

// Clear reverts to an anonymous session and persists the empty state.
func (s *Store) Clear() error {
	s.user = User{}
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(state{User: s.user})
	if err != nil {
		return err
	}
	// Write-then-rename keeps a crash from truncating the session file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

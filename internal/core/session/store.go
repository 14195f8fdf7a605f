// Package session holds the authenticated user of one browser context. The
// Store is the only owner of that state; consumers subscribe to changes
// instead of keeping copies.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// StorageKey is the canonical key the user is persisted under.
const StorageKey = "auth_user"

// Change describes one transition of the session user.
type Change struct {
	ContextID string
	Previous  *domain.User
	Current   *domain.User
}

// Listener is notified synchronously after every Save or Clear.
type Listener func(Change)

// Store is the session of a single browser context.
type Store struct {
	storage   ports.ContextStorage
	contextID string
	log       zerolog.Logger

	mu        sync.RWMutex
	user      *domain.User
	listeners map[int]Listener
	nextID    int
}

// NewStore returns an empty store for contextID. Call Load to hydrate it
// from storage. log is expected to carry the context id already.
func NewStore(storage ports.ContextStorage, contextID string, log zerolog.Logger) *Store {
	return &Store{
		storage:   storage,
		contextID: contextID,
		log:       log,
		listeners: make(map[int]Listener),
	}
}

// ContextID identifies the browser context this store belongs to.
func (s *Store) ContextID() string { return s.contextID }

// Load reads the persisted user into memory. Missing or malformed data is
// "no session" and not an error; only storage failures are returned.
func (s *Store) Load(ctx context.Context) (*domain.User, error) {
	raw, err := s.storage.Get(ctx, s.contextID, StorageKey)
	if err != nil && !errors.Is(err, ports.ErrStorageMiss) {
		return nil, fmt.Errorf("session load: %w", err)
	}

	var user *domain.User
	if err == nil {
		user = decodeUser(raw)
		if user == nil {
			s.log.Warn().Msg("discarding malformed session data")
		}
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// User returns the in-memory session user, or nil when unauthenticated.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a user is present.
func (s *Store) Authenticated() bool {
	return s.User() != nil
}

// Save persists user, replacing any previous value, and notifies listeners.
func (s *Store) Save(ctx context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("session save: nil user")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	if err := s.storage.Set(ctx, s.contextID, StorageKey, raw); err != nil {
		return fmt.Errorf("session save: %w", err)
	}

	stored := *user
	s.swap(&stored)
	return nil
}

// Touch rewrites the persisted user without notifying listeners, which
// restarts its expiry. It does nothing for an anonymous store.
func (s *Store) Touch(ctx context.Context) error {
	user := s.User()
	if user == nil {
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session touch: %w", err)
	}
	if err := s.storage.Set(ctx, s.contextID, StorageKey, raw); err != nil {
		return fmt.Errorf("session touch: %w", err)
	}
	return nil
}

// Clear removes the persisted user and resets memory. It does not navigate;
// callers send the browser to the login route themselves.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.contextID, StorageKey); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	s.swap(nil)
	return nil
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) swap(next *domain.User) {
	s.mu.Lock()
	prev := s.user
	s.user = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	change := Change{ContextID: s.contextID, Previous: prev, Current: next}
	for _, l := range listeners {
		l(change)
	}
}

// decodeUser returns nil for anything that is not a usable user record.
func decodeUser(raw []byte) *domain.User {
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	if u.ID == "" && u.Username == "" {
		return nil
	}
	return &u
}

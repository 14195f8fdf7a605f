package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// StateKey is the per-context storage key of the menu state.
const StateKey = "menu_state"

// StateStore persists menu activation per browser context so that manual
// toggles survive across requests.
type StateStore struct {
	storage ports.ContextStorage
}

func NewStateStore(storage ports.ContextStorage) *StateStore {
	return &StateStore{storage: storage}
}

// Load restores the state of contextID against tree. Missing or malformed
// data yields a fresh state.
func (s *StateStore) Load(ctx context.Context, contextID string, tree *Tree) (*State, error) {
	raw, err := s.storage.Get(ctx, contextID, StateKey)
	if errors.Is(err, ports.ErrStorageMiss) {
		return NewState(tree), nil
	}
	if err != nil {
		return nil, fmt.Errorf("menu state load: %w", err)
	}
	var ms domain.MenuState
	if err := json.Unmarshal(raw, &ms); err != nil {
		return NewState(tree), nil
	}
	return Restore(tree, ms), nil
}

// Save overwrites the persisted state of contextID.
func (s *StateStore) Save(ctx context.Context, contextID string, state *State) error {
	raw, err := json.Marshal(state.Snapshot())
	if err != nil {
		return fmt.Errorf("menu state encode: %w", err)
	}
	if err := s.storage.Set(ctx, contextID, StateKey, raw); err != nil {
		return fmt.Errorf("menu state save: %w", err)
	}
	return nil
}

// Clear drops the persisted state of contextID; the next Load is fresh.
func (s *StateStore) Clear(ctx context.Context, contextID string) error {
	if err := s.storage.Delete(ctx, contextID, StateKey); err != nil {
		return fmt.Errorf("menu state clear: %w", err)
	}
	return nil
}

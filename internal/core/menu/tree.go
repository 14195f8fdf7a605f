// Package menu holds the navigation tree, the lookups over it and the
// per-context activation state that drives highlighting and expansion.
package menu

import (
	"fmt"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// Tree is an immutable navigation tree with keys unique across all levels.
type Tree struct {
	entries []domain.MenuEntry
}

// NewTree copies entries into a Tree, rejecting duplicate keys.
func NewTree(entries []domain.MenuEntry) (*Tree, error) {
	seen := make(map[string]struct{})
	var check func([]domain.MenuEntry) error
	check = func(level []domain.MenuEntry) error {
		for _, e := range level {
			if _, dup := seen[e.Key]; dup {
				return fmt.Errorf("menu: %w: %q", domain.ErrDuplicateMenuKey, e.Key)
			}
			seen[e.Key] = struct{}{}
			if err := check(e.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(entries); err != nil {
		return nil, err
	}
	return &Tree{entries: cloneEntries(entries)}, nil
}

// MustTree is NewTree for static definitions; it panics on invalid input.
func MustTree(entries []domain.MenuEntry) *Tree {
	t, err := NewTree(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the top-level entries.
func (t *Tree) Entries() []domain.MenuEntry {
	return cloneEntries(t.entries)
}

// Walk visits every entry depth-first with its depth (0 = top level).
// Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(e domain.MenuEntry, depth int) bool) {
	var walk func([]domain.MenuEntry, int) bool
	walk = func(level []domain.MenuEntry, depth int) bool {
		for _, e := range level {
			if !fn(e, depth) {
				return false
			}
			if !walk(e.Children, depth+1) {
				return false
			}
		}
		return true
	}
	walk(t.entries, 0)
}

// FilterForUser returns a tree without admin-only entries unless user is an
// admin. A nil user sees the non-admin tree.
func (t *Tree) FilterForUser(user *domain.User) *Tree {
	if user.IsAdmin() {
		return t
	}
	return &Tree{entries: filterAdminOnly(t.entries)}
}

func filterAdminOnly(level []domain.MenuEntry) []domain.MenuEntry {
	out := make([]domain.MenuEntry, 0, len(level))
	for _, e := range level {
		if e.AdminOnly {
			continue
		}
		e.Children = filterAdminOnly(e.Children)
		out = append(out, e)
	}
	return out
}

func cloneEntries(level []domain.MenuEntry) []domain.MenuEntry {
	if level == nil {
		return nil
	}
	out := make([]domain.MenuEntry, len(level))
	for i, e := range level {
		if e.Badge != nil {
			b := *e.Badge
			e.Badge = &b
		}
		e.Children = cloneEntries(e.Children)
		out[i] = e
	}
	return out
}

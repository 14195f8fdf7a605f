package menu

import (
	"fmt"
	"slices"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// State tracks which entries are active and which groups are expanded for
// one menu instance.
//
// The active set is the union of two chains: the location chain (the entry
// matching the current path plus its ancestors) and the manual chain (the
// group the user last expanded plus its ancestors). Each chain always holds
// every ancestor of its head.
type State struct {
	tree     *Tree
	location []string
	manual   []string
	expanded map[string]bool
	leaf     string
}

// NewState returns an empty state over tree.
func NewState(tree *Tree) *State {
	return &State{tree: tree, expanded: make(map[string]bool)}
}

// Restore rebuilds a state from its persisted form. Keys no longer present
// in tree are dropped, which matters when the tree is filtered per role.
func Restore(tree *Tree, ms domain.MenuState) *State {
	s := NewState(tree)
	s.location = s.knownChain(ms.Location)
	s.manual = s.knownChain(ms.Manual)
	for k, v := range ms.Expanded {
		if _, ok := tree.FindMenuItem(k); ok {
			s.expanded[k] = v
		}
	}
	if len(s.location) > 0 {
		s.leaf = ms.Leaf
	}
	return s
}

// knownChain keeps a chain only if every key still resolves.
func (s *State) knownChain(keys []string) []string {
	for _, k := range keys {
		if _, ok := s.tree.FindMenuItem(k); !ok {
			return nil
		}
	}
	return slices.Clone(keys)
}

// Navigate activates the entry whose URL equals path. It reports false and
// leaves the state untouched when nothing matches. Groups on the location
// chain are opened only when the location changes, so a group collapsed
// while its page is shown stays collapsed across re-renders of that page.
func (s *State) Navigate(path string) bool {
	matched, ok := s.tree.GetMenuItemFromURL(path)
	if !ok {
		return false
	}
	if matched.Key == s.leaf && len(s.location) > 0 {
		return true
	}
	chain := append([]string{matched.Key}, s.tree.FindAllParent(matched)...)
	s.location = chain
	s.leaf = matched.Key
	for _, k := range chain {
		if e, ok := s.tree.FindMenuItem(k); ok && e.Kind() == domain.KindGroup {
			s.expanded[k] = true
		}
	}
	return true
}

// Toggle flips the expansion of a group. Expanding also makes the group and
// its ancestors the manual chain; collapsing drops a manual chain that
// contains the group. The location chain is never changed here.
func (s *State) Toggle(key string) error {
	entry, ok := s.tree.FindMenuItem(key)
	if !ok {
		return fmt.Errorf("toggle %q: %w", key, domain.ErrMenuEntryNotFound)
	}
	if entry.Kind() != domain.KindGroup {
		return fmt.Errorf("toggle %q: %w", key, domain.ErrNotAGroup)
	}

	if s.expanded[key] {
		s.expanded[key] = false
		if slices.Contains(s.manual, key) {
			s.manual = nil
		}
		return nil
	}

	s.expanded[key] = true
	s.manual = append([]string{key}, s.tree.FindAllParent(entry)...)
	for _, k := range s.manual[1:] {
		s.expanded[k] = true
	}
	return nil
}

// ActiveKeys returns the active set, sorted.
func (s *State) ActiveKeys() []string {
	set := make(map[string]struct{}, len(s.location)+len(s.manual))
	for _, k := range s.location {
		set[k] = struct{}{}
	}
	for _, k := range s.manual {
		set[k] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// IsActive reports whether key is in the active set.
func (s *State) IsActive(key string) bool {
	return slices.Contains(s.location, key) || slices.Contains(s.manual, key)
}

// IsExpanded reports whether the group key is open.
func (s *State) IsExpanded(key string) bool {
	return s.expanded[key]
}

// ActiveLeaf returns the key of the entry matched by the last successful
// Navigate, or "" when none.
func (s *State) ActiveLeaf() string {
	return s.leaf
}

// ActiveURL is the URL of ActiveLeaf; the scroll affordance targets it.
func (s *State) ActiveURL() string {
	if s.leaf == "" {
		return ""
	}
	if e, ok := s.tree.FindMenuItem(s.leaf); ok {
		return e.URL
	}
	return ""
}

// Snapshot returns the persistable form of the state.
func (s *State) Snapshot() domain.MenuState {
	ms := domain.MenuState{
		Location: slices.Clone(s.location),
		Manual:   slices.Clone(s.manual),
		Leaf:     s.leaf,
	}
	if len(s.expanded) > 0 {
		ms.Expanded = make(map[string]bool, len(s.expanded))
		for k, v := range s.expanded {
			ms.Expanded[k] = v
		}
	}
	return ms
}

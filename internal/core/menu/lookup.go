package menu

import "github.com/99minutos/backoffice/internal/core/domain"

// FindMenuItem returns the entry with the given key.
func FindMenuItem(entries []domain.MenuEntry, key string) (*domain.MenuEntry, bool) {
	for i := range entries {
		if entries[i].Key == key {
			return &entries[i], true
		}
		if found, ok := FindMenuItem(entries[i].Children, key); ok {
			return found, true
		}
	}
	return nil, false
}

// GetMenuItemFromURL returns the first entry, depth-first, whose URL equals
// path exactly. Entries without a URL never match. Disabled entries do.
func GetMenuItemFromURL(entries []domain.MenuEntry, path string) (*domain.MenuEntry, bool) {
	for i := range entries {
		if entries[i].URL != "" && entries[i].URL == path {
			return &entries[i], true
		}
		if found, ok := GetMenuItemFromURL(entries[i].Children, path); ok {
			return found, true
		}
	}
	return nil, false
}

// FindAllParent returns the keys of target's ancestors, immediate parent
// first. It is empty when target is top level, nil or not in the tree.
func FindAllParent(entries []domain.MenuEntry, target *domain.MenuEntry) []string {
	if target == nil {
		return []string{}
	}
	chain, ok := pathTo(entries, target.Key)
	if !ok {
		return []string{}
	}
	// chain runs root -> target; drop target and reverse.
	parents := make([]string, 0, len(chain)-1)
	for i := len(chain) - 2; i >= 0; i-- {
		parents = append(parents, chain[i])
	}
	return parents
}

func pathTo(entries []domain.MenuEntry, key string) ([]string, bool) {
	for _, e := range entries {
		if e.Key == key {
			return []string{e.Key}, true
		}
		if rest, ok := pathTo(e.Children, key); ok {
			return append([]string{e.Key}, rest...), true
		}
	}
	return nil, false
}

// FindMenuItem looks up key in the tree.
func (t *Tree) FindMenuItem(key string) (*domain.MenuEntry, bool) {
	return FindMenuItem(t.entries, key)
}

// GetMenuItemFromURL looks up path in the tree.
func (t *Tree) GetMenuItemFromURL(path string) (*domain.MenuEntry, bool) {
	return GetMenuItemFromURL(t.entries, path)
}

// FindAllParent returns the ancestor keys of target in the tree.
func (t *Tree) FindAllParent(target *domain.MenuEntry) []string {
	return FindAllParent(t.entries, target)
}

package domain

import "errors"

var ErrDuplicateMenuKey = errors.New("duplicate menu key")
var ErrMenuEntryNotFound = errors.New("menu entry not found")
var ErrNotAGroup = errors.New("menu entry is not a group")

// EntryKind tags a MenuEntry as one of the three node variants.
type EntryKind int

const (
	KindLeaf EntryKind = iota
	KindGroup
	KindTitle
)

func (k EntryKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindTitle:
		return "title"
	default:
		return "leaf"
	}
}

// Badge is a purely decorative label rendered next to a menu entry.
type Badge struct {
	Text    string `json:"text"`
	Variant string `json:"variant"`
}

// MenuEntry is one node of the navigation tree.
type MenuEntry struct {
	Key        string      `json:"key"`
	Label      string      `json:"label"`
	URL        string      `json:"url,omitempty"`
	Icon       string      `json:"icon,omitempty"`
	IsTitle    bool        `json:"is_title,omitempty"`
	Children   []MenuEntry `json:"children,omitempty"`
	Badge      *Badge      `json:"badge,omitempty"`
	Target     string      `json:"target,omitempty"`
	IsDisabled bool        `json:"is_disabled,omitempty"`
	// AdminOnly entries are removed from the tree for non-admin sessions.
	AdminOnly bool `json:"admin_only,omitempty"`
}

// Kind reports which variant the entry is. Titles win over children.
func (e MenuEntry) Kind() EntryKind {
	switch {
	case e.IsTitle:
		return KindTitle
	case len(e.Children) > 0:
		return KindGroup
	default:
		return KindLeaf
	}
}

// MenuState is the persisted form of a browser context's menu activation.
type MenuState struct {
	Location []string        `json:"location,omitempty"`
	Manual   []string        `json:"manual,omitempty"`
	Expanded map[string]bool `json:"expanded,omitempty"`
	Leaf     string          `json:"leaf,omitempty"`
}

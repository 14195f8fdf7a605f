package menu

import (
	"slices"
	"testing"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func sampleEntries() []domain.MenuEntry {
	return []domain.MenuEntry{
		{Key: "main", Label: "Main", IsTitle: true},
		{Key: "d1", Label: "Dashboard", URL: "/dashboard"},
		{
			Key:   "g1",
			Label: "Reports",
			Children: []domain.MenuEntry{
				{Key: "c1", Label: "Daily", URL: "/reports/daily"},
				{
					Key:   "g2",
					Label: "Archive",
					Children: []domain.MenuEntry{
						{Key: "c2", Label: "2024", URL: "/reports/archive/2024"},
						{Key: "c3", Label: "Old", URL: "/reports/old", IsDisabled: true},
					},
				},
			},
		},
		{
			Key:   "g3",
			Label: "Billing",
			Children: []domain.MenuEntry{
				{Key: "c4", Label: "Invoices", URL: "/invoices"},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// FindMenuItem
// ---------------------------------------------------------------------------

func TestFindMenuItem_FindsEveryKey(t *testing.T) {
	entries := sampleEntries()
	for _, key := range []string{"main", "d1", "g1", "c1", "g2", "c2", "c3", "g3", "c4"} {
		got, ok := FindMenuItem(entries, key)
		if !ok {
			t.Fatalf("expected %q to be found", key)
		}
		if got.Key != key {
			t.Errorf("expected key %q, got %q", key, got.Key)
		}
	}
}

func TestFindMenuItem_Absent(t *testing.T) {
	if got, ok := FindMenuItem(sampleEntries(), "nope"); ok || got != nil {
		t.Fatalf("expected absent, got %+v", got)
	}
	if _, ok := FindMenuItem(nil, "d1"); ok {
		t.Fatalf("expected absent on empty tree")
	}
}

// ---------------------------------------------------------------------------
// GetMenuItemFromURL
// ---------------------------------------------------------------------------

func TestGetMenuItemFromURL_ExactMatch(t *testing.T) {
	got, ok := GetMenuItemFromURL(sampleEntries(), "/reports/archive/2024")
	if !ok || got.Key != "c2" {
		t.Fatalf("expected c2, got %+v (ok=%v)", got, ok)
	}
}

func TestGetMenuItemFromURL_NoPrefixMatch(t *testing.T) {
	for _, path := range []string{"/reports", "/reports/daily/", "/dash", "", "/DASHBOARD"} {
		if got, ok := GetMenuItemFromURL(sampleEntries(), path); ok {
			t.Errorf("path %q: expected absent, got %q", path, got.Key)
		}
	}
}

func TestGetMenuItemFromURL_DisabledEntriesStillMatch(t *testing.T) {
	got, ok := GetMenuItemFromURL(sampleEntries(), "/reports/old")
	if !ok || got.Key != "c3" {
		t.Fatalf("expected disabled entry c3 to match, got %+v", got)
	}
}

func TestGetMenuItemFromURL_FirstDepthFirstWins(t *testing.T) {
	entries := []domain.MenuEntry{
		{Key: "g", Label: "G", Children: []domain.MenuEntry{{Key: "inner", URL: "/x"}}},
		{Key: "outer", URL: "/x"},
	}
	got, ok := GetMenuItemFromURL(entries, "/x")
	if !ok || got.Key != "inner" {
		t.Fatalf("expected depth-first match 'inner', got %+v", got)
	}
}

// ---------------------------------------------------------------------------
// FindAllParent
// ---------------------------------------------------------------------------

func TestFindAllParent_ImmediateParentFirst(t *testing.T) {
	entries := sampleEntries()
	target, _ := FindMenuItem(entries, "c2")

	got := FindAllParent(entries, target)
	if want := []string{"g2", "g1"}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFindAllParent_TopLevelIsEmpty(t *testing.T) {
	entries := sampleEntries()
	target, _ := FindMenuItem(entries, "d1")

	if got := FindAllParent(entries, target); len(got) != 0 {
		t.Fatalf("expected no parents, got %v", got)
	}
}

func TestFindAllParent_AbsentTargetDegradesGracefully(t *testing.T) {
	entries := sampleEntries()

	stranger := &domain.MenuEntry{Key: "ghost", URL: "/ghost"}
	if got := FindAllParent(entries, stranger); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if got := FindAllParent(entries, nil); len(got) != 0 {
		t.Fatalf("expected empty slice for nil target, got %v", got)
	}
}

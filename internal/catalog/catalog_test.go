package catalog

import "testing"

func TestCatalogParses(t *testing.T) {
	if _, err := load(); err != nil {
		t.Fatalf("embedded catalog: %v", err)
	}
	if len(All()) != 5 {
		t.Errorf("len(All()) = %d, want 5", len(All()))
	}
	if Categories()[0].ID != CategoryAll {
		t.Errorf("first category = %q, want %q", Categories()[0].ID, CategoryAll)
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		category string
		want     []string
	}{
		{"", []string{"2048", "flappy", "memory", "reflex", "snake"}},
		{CategoryAll, []string{"2048", "flappy", "memory", "reflex", "snake"}},
		{"puzzle", []string{"2048"}},
		{"reflex", []string{"reflex", "snake"}},
		{"strategy", nil},
	}
	for _, tc := range tests {
		t.Run(tc.category, func(t *testing.T) {
			got := Filter(tc.category)
			if len(got) != len(tc.want) {
				t.Fatalf("Filter(%q) returned %d entries, want %d", tc.category, len(got), len(tc.want))
			}
			for i, e := range got {
				if e.ID != tc.want[i] {
					t.Errorf("Filter(%q)[%d] = %q, want %q", tc.category, i, e.ID, tc.want[i])
				}
			}
		})
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 5},
		{"SNAKE", 1},
		{"pairs", 1},
		{"tiles", 1},
		{"zzz", 0},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			if got := Search(All(), tc.query); len(got) != tc.want {
				t.Errorf("Search(%q) = %d entries, want %d", tc.query, len(got), tc.want)
			}
		})
	}
}

func TestSearchWithinCategory(t *testing.T) {
	got := Search(Filter("reflex"), "snake")
	if len(got) != 1 || got[0].ID != "snake" {
		t.Errorf("Search(Filter(reflex), snake) = %+v", got)
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("memory")
	if !ok || e.Title != "Memory Match" {
		t.Errorf("Lookup(memory) = %+v, %v", e, ok)
	}
	if _, ok := Lookup("tetris"); ok {
		t.Error("Lookup(tetris) should fail")
	}
}

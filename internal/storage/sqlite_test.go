package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Get("2048BestScore"); err != nil || ok {
		t.Fatalf("Get() on empty store = ok %v, err %v; want absent", ok, err)
	}

	if err := store.Set("2048BestScore", "128"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("2048BestScore", "256"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok, err := store.Get("2048BestScore")
	if err != nil || !ok || v != "256" {
		t.Errorf("Get() = %q, %v, %v; want \"256\", true, nil", v, ok, err)
	}

	if err := store.Delete("2048BestScore"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := store.Get("2048BestScore"); ok {
		t.Error("key should be gone after Delete()")
	}
}

func TestStoreKeyValueSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Set("reflexBestScore", "231"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get("reflexBestScore")
	if err != nil || !ok || v != "231" {
		t.Errorf("Get() after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestStoreRounds(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRound(Round{GameID: "snake", Metric: 30})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("SaveRound() id = %q, want a UUID", id)
	}

	store.SaveRound(Round{GameID: "snake", Metric: 50, Won: false})
	store.SaveRound(Round{GameID: "2048", Metric: 2400, Won: true})

	rounds, err := store.RecentRounds("snake", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 snake rounds, got %d", len(rounds))
	}
	if rounds[0].Metric != 50 {
		t.Errorf("most recent round metric = %d, want 50", rounds[0].Metric)
	}

	stats, err := store.Stats("snake")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 2 || stats.MaxMetric != 50 || stats.MinMetric != 30 {
		t.Errorf("Stats() = %+v", stats)
	}

	if err := store.ClearRounds("snake"); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}
	rounds, _ = store.RecentRounds("snake", 10)
	if len(rounds) != 0 {
		t.Errorf("expected 0 snake rounds after clear, got %d", len(rounds))
	}
	other, _ := store.RecentRounds("2048", 10)
	if len(other) != 1 || !other[0].Won {
		t.Errorf("2048 rounds should be untouched, got %+v", other)
	}
}

func TestStoreRecentRoundsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveRound(Round{GameID: "flappy", Metric: i})
	}

	rounds, err := store.RecentRounds("flappy", 3)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 3 {
		t.Errorf("Expected 3 rounds with limit, got %d", len(rounds))
	}
}

package save

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "save.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func TestStoreOpenCreatesFile(t *testing.T) {
	_, dbPath := openTemp(t)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestProgressRoundTrip(t *testing.T) {
	store, _ := openTemp(t)

	if _, err := store.LoadProgress(); !errors.Is(err, ErrNoSave) {
		t.Fatalf("LoadProgress() on empty store err = %v, want ErrNoSave", err)
	}

	if err := store.SaveProgress(Progress{Scene: "hub", Destination: "HubWorldEnter", Health: 7, MaxHealth: 10, Coins: 3}); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	if err := store.SaveProgress(Progress{Scene: "forest", Destination: "ForestFromHub", Health: 5, MaxHealth: 10, Coins: 9}); err != nil {
		t.Fatalf("SaveProgress() overwrite failed: %v", err)
	}

	got, err := store.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if got.Scene != "forest" || got.Destination != "ForestFromHub" || got.Health != 5 || got.Coins != 9 {
		t.Fatalf("LoadProgress() = %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stored")
	}

	if err := store.SaveProgress(Progress{}); err == nil {
		t.Error("SaveProgress() without a scene should fail")
	}
}

func TestChestLedger(t *testing.T) {
	store, _ := openTemp(t)

	if store.IsOpened("forest", "glade") {
		t.Fatal("chest opened before marking")
	}
	for i := 0; i < 2; i++ {
		if err := store.MarkOpened("forest", "glade"); err != nil {
			t.Fatalf("MarkOpened() #%d failed: %v", i, err)
		}
	}
	if err := store.MarkOpened("forest", "creek"); err != nil {
		t.Fatalf("MarkOpened() failed: %v", err)
	}
	if !store.IsOpened("forest", "glade") {
		t.Fatal("chest not recorded")
	}
	if store.IsOpened("hub", "glade") {
		t.Fatal("chest ids leaked across scenes")
	}

	ids, err := store.OpenedChests("forest")
	if err != nil {
		t.Fatalf("OpenedChests() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "creek" || ids[1] != "glade" {
		t.Fatalf("OpenedChests() = %v", ids)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if store.IsOpened("forest", "glade") {
		t.Fatal("Reset() kept chests")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "save.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.MarkOpened("hub", "start"); err != nil {
		t.Fatalf("MarkOpened() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if !store.IsOpened("hub", "start") {
		t.Fatal("chest lost across reopen")
	}
}

package save

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/samdwyer/lantern/internal/session"
	"github.com/samdwyer/lantern/internal/world"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saves.db"), nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := openStore(t)
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	rec := session.Record{
		Seed:      987654321,
		Avatar:    world.Pt(12, 7),
		Collected: []world.Point{world.Pt(3, 4), world.Pt(20, 9)},
	}

	saved, err := s.Save(2, rec)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("Save() should assign an ID")
	}

	loaded, err := s.Load(2)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.ID != saved.ID || loaded.Seed != rec.Seed || loaded.Avatar != rec.Avatar {
		t.Errorf("Load() = %+v, want %+v", loaded, saved)
	}
	if len(loaded.Collected) != 2 || loaded.Collected[1] != world.Pt(20, 9) {
		t.Errorf("Collected = %v, want %v in order", loaded.Collected, rec.Collected)
	}
	if !loaded.SavedAt.Equal(fixed) {
		t.Errorf("SavedAt = %v, want %v", loaded.SavedAt, fixed)
	}
}

func TestSaveOverwritesWithNewID(t *testing.T) {
	s := openStore(t)

	first, _ := s.Save(QuickSlot, session.Record{Seed: 1})
	second, _ := s.Save(QuickSlot, session.Record{Seed: 2})
	if first.ID == second.ID {
		t.Error("each save should get its own ID")
	}

	loaded, err := s.Load(QuickSlot)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Seed != 2 {
		t.Errorf("Seed = %d, want 2 after overwrite", loaded.Seed)
	}
}

func TestLoadEmptyAndInvalid(t *testing.T) {
	s := openStore(t)

	if _, err := s.Load(1); !errors.Is(err, ErrSlotEmpty) {
		t.Errorf("Load(empty) error = %v, want ErrSlotEmpty", err)
	}
	if _, err := s.Load(MaxSlots + 1); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("Load(%d) error = %v, want ErrInvalidSlot", MaxSlots+1, err)
	}
	if _, err := s.Save(-1, session.Record{}); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("Save(-1) error = %v, want ErrInvalidSlot", err)
	}
}

func TestFirstAvailableSlot(t *testing.T) {
	s := openStore(t)

	slot, ok, err := s.FirstAvailableSlot()
	if err != nil || !ok || slot != 1 {
		t.Fatalf("FirstAvailableSlot() = %d, %v, %v; want 1, true, nil", slot, ok, err)
	}

	s.Save(QuickSlot, session.Record{})
	s.Save(1, session.Record{})
	s.Save(3, session.Record{})
	if slot, ok, _ := s.FirstAvailableSlot(); !ok || slot != 2 {
		t.Errorf("FirstAvailableSlot() = %d, %v; want 2, true", slot, ok)
	}

	s.Save(2, session.Record{})
	if _, ok, _ := s.FirstAvailableSlot(); ok {
		t.Error("FirstAvailableSlot() should report no slot when all are used")
	}
}

func TestReopenKeepsSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves.db")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(3, session.Record{Seed: 55}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	rec, err := s.Load(3)
	if err != nil || rec.Seed != 55 {
		t.Errorf("Load(3) after reopen = %+v, %v", rec, err)
	}
}

// Package save persists sessions in numbered slots inside a bbolt file.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/samdwyer/lantern/internal/session"
)

const (
	// QuickSlot is the save written by ":q" and read by "Load Game".
	QuickSlot = 0
	// MaxSlots is the number of numbered slots, 1..MaxSlots.
	MaxSlots = 3
)

var slotsBucket = []byte("slots")

var (
	// ErrSlotEmpty is returned when loading a slot that was never written.
	ErrSlotEmpty = errors.New("save slot is empty")
	// ErrInvalidSlot is returned for slot numbers outside 0..MaxSlots.
	ErrInvalidSlot = errors.New("invalid save slot")
)

// Store reads and writes session records.
type Store struct {
	db  *bolt.DB
	log *zap.Logger
	now func() time.Time
}

// Open opens or creates the save file at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open save file %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare save file %s: %w", path, err)
	}

	return &Store{db: db, log: log, now: time.Now}, nil
}

// Close releases the file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

func slotKey(slot int) ([]byte, error) {
	if slot < QuickSlot || slot > MaxSlots {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return []byte(strconv.Itoa(slot)), nil
}

// Save writes rec to slot, stamping a fresh ID and time. It returns the
// record as stored.
func (s *Store) Save(slot int, rec session.Record) (session.Record, error) {
	key, err := slotKey(slot)
	if err != nil {
		return rec, err
	}

	rec.ID = uuid.NewString()
	rec.SavedAt = s.now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("failed to encode save: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotsBucket).Put(key, data)
	})
	if err != nil {
		return rec, fmt.Errorf("failed to write slot %d: %w", slot, err)
	}

	s.log.Info("game saved",
		zap.Int("slot", slot),
		zap.String("id", rec.ID),
		zap.Int64("seed", rec.Seed),
		zap.Int("collected", len(rec.Collected)),
	)
	return rec, nil
}

// Load reads the record in slot.
func (s *Store) Load(slot int) (session.Record, error) {
	var rec session.Record
	key, err := slotKey(slot)
	if err != nil {
		return rec, err
	}

	var data []byte
	err = s.db.View(func(tx *bolt.Tx) error {
		// bbolt values are only valid inside the transaction
		if v := tx.Bucket(slotsBucket).Get(key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return rec, fmt.Errorf("failed to read slot %d: %w", slot, err)
	}
	if data == nil {
		return rec, fmt.Errorf("slot %d: %w", slot, ErrSlotEmpty)
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode slot %d: %w", slot, err)
	}

	s.log.Info("game loaded",
		zap.Int("slot", slot),
		zap.String("id", rec.ID),
		zap.Int64("seed", rec.Seed),
		zap.Int("collected", len(rec.Collected)),
	)
	return rec, nil
}

// Occupied reports which numbered slots hold a save, indexed by slot number.
func (s *Store) Occupied() ([MaxSlots + 1]bool, error) {
	var used [MaxSlots + 1]bool
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(slotsBucket).ForEach(func(k, _ []byte) error {
			slot, err := strconv.Atoi(string(k))
			if err == nil && slot >= QuickSlot && slot <= MaxSlots {
				used[slot] = true
			}
			return nil
		})
	})
	return used, err
}

// FirstAvailableSlot returns the lowest empty numbered slot, or false when
// all are taken.
func (s *Store) FirstAvailableSlot() (int, bool, error) {
	used, err := s.Occupied()
	if err != nil {
		return 0, false, err
	}
	for slot := 1; slot <= MaxSlots; slot++ {
		if !used[slot] {
			return slot, true, nil
		}
	}
	return 0, false, nil
}

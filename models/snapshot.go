package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the on-disk persistence format: the full dataset plus the
// current day input. Derived fields are stored as-is but recomputed after
// every load, so stale snapshots self-heal.
type Snapshot struct {
	Data    AppData   `json:"data"`
	Day     DayState  `json:"day"`
	SavedAt time.Time `json:"savedAt"`
}

// SaveSnapshot writes the snapshot atomically: temp file in the same
// directory, then rename.
func SaveSnapshot(path string, snap Snapshot) error {
	snap.SavedAt = time.Now().UTC()
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot from disk. A missing file is not an error;
// ok reports whether a snapshot was found.
func LoadSnapshot(path string) (snap Snapshot, ok bool, err error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.Day.QtyByDish == nil {
		snap.Day.QtyByDish = map[string]int{}
	}
	if snap.Day.PriceByDish == nil {
		snap.Day.PriceByDish = map[string]*decimal.Decimal{}
	}
	return snap, true, nil
}

// Package localstore persists a versioned snapshot of the place list in the
// per-user state directory. It is the fallback-of-last-resort data source
// and a trailing mirror of the last known-good remote state.
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/foodmap/foodmap/internal/config"
	"github.com/foodmap/foodmap/pkg/logging"
	"github.com/foodmap/foodmap/pkg/places"
)

const snapshotFileName = "places.json"

// snapshotVersion is read back informationally only; mismatches are not
// rejected (forward-compatible by convention).
const snapshotVersion = 1

// Provenance labels recording which source last produced the snapshot.
const (
	ProvenanceEdited   = "edited"
	ProvenanceSupabase = "supabase"
	ProvenanceFallback = "kb.json"
)

// Snapshot is the versioned envelope written after every successful
// mutation or reconciliation pass.
type Snapshot struct {
	Version int            `json:"version"`
	SavedAt string         `json:"savedAt"`
	Mode    string         `json:"mode"`
	Items   []places.Place `json:"items"`
}

// Store reads and writes the snapshot file.
type Store struct {
	path string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, snapshotFileName)}
}

// Load returns the persisted snapshot, or nil when none exists. Fails soft:
// any parse or shape error yields nil, never an error.
func (s *Store) Load() *Snapshot {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var envelope struct {
		Version int          `json:"version"`
		SavedAt string       `json:"savedAt"`
		Mode    string       `json:"mode"`
		Items   []places.Row `json:"items"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		logging.Debug().Err(err).Str("path", s.path).Msg("local snapshot malformed, treating as absent")
		return nil
	}
	if envelope.Items == nil {
		return nil
	}

	items := make([]places.Place, 0, len(envelope.Items))
	for _, row := range envelope.Items {
		items = append(items, places.NormalizeRow(row))
	}
	version := envelope.Version
	if version == 0 {
		version = snapshotVersion
	}
	return &Snapshot{
		Version: version,
		SavedAt: envelope.SavedAt,
		Mode:    envelope.Mode,
		Items:   items,
	}
}

// Save serializes and persists a new snapshot, overwriting any previous one.
// The envelope is written atomically.
func (s *Store) Save(items []places.Place, provenance string) error {
	envelope := Snapshot{
		Version: snapshotVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Mode:    provenance,
		Items:   items,
	}
	if envelope.Items == nil {
		envelope.Items = []places.Place{}
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return err
	}
	return config.WriteFileAtomic(s.path, data)
}

// Clear removes the persisted snapshot.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

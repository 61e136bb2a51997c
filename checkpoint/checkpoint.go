// SPDX-License-Identifier: MIT

// Package checkpoint names, stores and enumerates saved network states.
//
// A run saves one state every perImages training images; the states of a
// run form a bounded sequence of (epoch, images) points that Sweep
// enumerates and that evaluation can resume from any index.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/pseudoprop/network"
)

var (
	// ErrInvalidSweep indicates non-positive epochs, dataset size or perImages,
	// or a dataset smaller than perImages.
	ErrInvalidSweep = errors.New("checkpoint: invalid sweep parameters")

	// ErrPointIndex indicates a sweep index outside [0, Len()).
	ErrPointIndex = errors.New("checkpoint: point index out of range")

	// ErrCorrupt indicates a checkpoint file that does not decode or does not
	// describe the requested point.
	ErrCorrupt = errors.New("checkpoint: corrupt file")
)

// FileName returns the canonical file name of the state saved after images
// images of epoch epoch.
func FileName(mode network.Mode, epoch, images int) string {
	return fmt.Sprintf("model_%s_epoch_%d_images_%d.json", mode, epoch, images)
}

// File is the on-disk form of one checkpoint.
type File struct {
	Epoch  int           `json:"epoch"`
	Images int           `json:"images"`
	State  network.State `json:"state"`
}

// Store reads and writes checkpoints of one model type under a directory.
type Store struct {
	dir  string
	mode network.Mode
}

// NewStore binds a directory and a model type.
func NewStore(dir string, mode network.Mode) *Store {
	return &Store{dir: dir, mode: mode}
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the full path of a point's file.
func (s *Store) Path(p Point) string {
	return filepath.Join(s.dir, FileName(s.mode, p.Epoch, p.Images))
}

// Save writes st for point p. The file is written to a temporary name and
// renamed into place, so readers never observe a partial checkpoint.
func (s *Store) Save(p Point, st network.State) error {
	if st.Mode != s.mode {
		return fmt.Errorf("save %s: %w", FileName(s.mode, p.Epoch, p.Images), network.ErrStateMismatch)
	}
	raw, err := json.MarshalIndent(File{Epoch: p.Epoch, Images: p.Images, State: st}, "", "  ")
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err = os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	return writeAtomic(s.Path(p), raw)
}

// Load reads the state saved for point p.
func (s *Store) Load(p Point) (network.State, error) {
	path := s.Path(p)
	raw, err := os.ReadFile(path)
	if err != nil {
		return network.State{}, fmt.Errorf("load: %w", err)
	}
	var f File
	if err = json.Unmarshal(raw, &f); err != nil {
		return network.State{}, fmt.Errorf("load %s: %w: %w", path, ErrCorrupt, err)
	}
	if f.Epoch != p.Epoch || f.Images != p.Images || f.State.Mode != s.mode {
		return network.State{}, fmt.Errorf("load %s: %w", path, ErrCorrupt)
	}

	return f.State, nil
}

// writeAtomic writes data to path via a temporary sibling and a rename.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

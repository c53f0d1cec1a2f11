// Package kernel loads and saves the magic section of kernel.bin.
package kernel

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"

	magicerrors "github.com/provide-io/ff8magic/pkg/magic/errors"
	"github.com/provide-io/ff8magic/pkg/magic/format"
)

// Options configure a Loader.
type Options struct {
	Logger hclog.Logger

	// Backup is the operation chain ("raw", "gzip", "bzip2", "gzip|bzip2")
	// used to keep a copy of the previous file contents before Save
	// overwrites it. Empty or "none" disables backups.
	Backup string
}

// Loader reads the 56 magic records of kernel.bin into a Repository and
// writes them back in place. Bytes outside the magic section are carried
// over untouched from the last Load.
type Loader struct {
	repo   Repository
	logger hclog.Logger
	backup string

	mu       sync.Mutex
	original []byte
	ids      []uint16
}

// NewLoader creates a loader backed by repo.
func NewLoader(repo Repository) *Loader {
	return NewLoaderWithOptions(repo, Options{})
}

// NewLoaderWithOptions creates a loader with a custom logger and backup mode.
func NewLoaderWithOptions(repo Repository, opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if repo == nil {
		repo = NewMemoryRepository()
	}
	return &Loader{
		repo:   repo,
		logger: logger,
		backup: opts.Backup,
	}
}

// Repository returns the repository the loader fills.
func (l *Loader) Repository() Repository {
	return l.repo
}

// Loaded reports whether a kernel has been loaded.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.original != nil
}

// Load reads path and replaces the repository contents with its spells.
func (l *Loader) Load(path string) ([]format.MagicData, error) {
	l.logger.Debug("📖 Reading kernel", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read kernel %s: %w", path, err)
	}
	return l.LoadBytes(data)
}

// LoadBytes parses an in-memory kernel image.
func (l *Loader) LoadBytes(data []byte) ([]format.MagicData, error) {
	if len(data) < format.KernelMagicEnd {
		return nil, fmt.Errorf("%w: kernel is %d bytes, need at least %d",
			magicerrors.ErrInsufficientFileSize, len(data), format.KernelMagicEnd)
	}

	textSection := textSectionOffset(data)
	if textSection < 0 {
		l.logger.Warn("⚠️ No magic text section found, spell names will be empty")
	}

	spells := make([]format.MagicData, format.KernelMagicCount)
	for i := range spells {
		m, err := format.ParseRecord(data, format.KernelMagicOffset+i*format.RecordSize)
		if err != nil {
			return nil, err
		}
		m.Index = i
		m.IsNewlyCreated = false
		m.Translations = extractEnglish(data, textSection, m)
		spells[i] = m
	}

	original := make([]byte, len(data))
	copy(original, data)
	ids := make([]uint16, len(spells))
	for i, m := range spells {
		ids[i] = m.MagicID
	}

	l.mu.Lock()
	l.original = original
	l.ids = ids
	l.mu.Unlock()

	l.repo.Replace(spells)
	l.logger.Info("✅ Kernel loaded", "spells", len(spells), "size", len(data), "text_section", textSection)
	return spells, nil
}

// SaveBytes serializes the repository spells over a copy of the loaded
// kernel image. Spells must still sit at the positions they were loaded
// from and keep their magic ids.
func (l *Loader) SaveBytes() ([]byte, error) {
	l.mu.Lock()
	original, ids := l.original, l.ids
	l.mu.Unlock()
	if original == nil {
		return nil, magicerrors.ErrNotLoaded
	}

	spells := l.repo.All()
	if len(spells) != format.KernelMagicCount {
		return nil, fmt.Errorf("%w: have %d spells, kernel holds %d",
			magicerrors.ErrMagicCountMismatch, len(spells), format.KernelMagicCount)
	}

	out := make([]byte, len(original))
	copy(out, original)
	for i, m := range spells {
		if m.Index != i || m.MagicID != ids[i] {
			return nil, fmt.Errorf("%w: position %d holds index %d magic id %d, loaded %d",
				magicerrors.ErrMagicIdMismatch, i, m.Index, m.MagicID, ids[i])
		}
		format.PutRecord(out[format.KernelMagicOffset+i*format.RecordSize:], m)
	}
	return out, nil
}

// Save writes the repository spells to path. When a backup mode is set the
// current contents of path are preserved first.
func (l *Loader) Save(path string) error {
	out, err := l.SaveBytes()
	if err != nil {
		return err
	}

	if previous, err := os.ReadFile(path); err == nil {
		if bytes.Equal(previous, out) {
			l.logger.Debug("⏭️ Kernel unchanged, skipping write", "path", path)
			return nil
		}
		if _, err := writeBackup(path, previous, l.backup, l.logger); err != nil {
			return err
		}
	}

	info, statErr := os.Stat(path)
	perm := os.FileMode(0o644)
	if statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, out, perm); err != nil {
		return fmt.Errorf("failed to write kernel %s: %w", path, err)
	}
	l.logger.Info("💾 Kernel saved", "path", path, "size", len(out))
	return nil
}

package state

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/mareas/internal/logging"
)

const bundledName = "defaults/config.json"

//go:embed defaults/config.json
var bundled embed.FS

// Store reads and writes the form state document. The writable copy lives at
// Path; a read-only default compiled into the binary covers the first run.
type Store struct {
	path         string
	fallback     fs.FS
	fallbackName string
	logger       *log.Logger
}

func NewStore(path string, logger *log.Logger) *Store {
	return &Store{
		path:         strings.TrimSpace(path),
		fallback:     bundled,
		fallbackName: bundledName,
		logger:       logging.OrDiscard(logger).WithPrefix("state"),
	}
}

// WithFallback replaces the bundled default. A nil fsys disables the fallback tier.
func (s *Store) WithFallback(fsys fs.FS, name string) *Store {
	s.fallback = fsys
	s.fallbackName = name
	return s
}

func (s *Store) Path() string { return s.path }

func (s *Store) Save(doc Document) error {
	if s.path == "" {
		return errors.New("state: no state path configured")
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("state: create dir: %w", err)
		}
	}
	if doc.Stages == nil {
		doc.Stages = []StageDocument{}
	}
	if doc.SpeciesIDs == nil {
		doc.SpeciesIDs = []string{}
	}
	payload, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("state: encode: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("state: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("state: replace: %w", err)
	}
	return nil
}

// Load returns the local copy, else the bundled default, else nil. Read and
// parse failures are logged and treated as absent.
func (s *Store) Load() *Document {
	if s.path != "" {
		raw, err := os.ReadFile(s.path)
		switch {
		case err == nil:
			doc, perr := decode(raw)
			if perr == nil {
				s.logger.Debug("loaded local state", "path", s.path)
				return doc
			}
			s.logger.Warn("local state unreadable, trying bundled default", "path", s.path, "err", perr)
		case errors.Is(err, fs.ErrNotExist):
			s.logger.Debug("no local state", "path", s.path)
		default:
			s.logger.Warn("cannot read local state", "path", s.path, "err", err)
		}
	}

	if s.fallback == nil || s.fallbackName == "" {
		return nil
	}
	raw, err := fs.ReadFile(s.fallback, s.fallbackName)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("cannot read bundled state", "name", s.fallbackName, "err", err)
		}
		return nil
	}
	doc, err := decode(raw)
	if err != nil {
		s.logger.Error("bundled state is corrupt", "name", s.fallbackName, "err", err)
		return nil
	}
	s.logger.Debug("loaded bundled state", "name", s.fallbackName)
	return doc
}

// Clear removes the writable copy; a missing file is not an error.
func (s *Store) Clear() error {
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("state: remove: %w", err)
	}
	return nil
}

func decode(raw []byte) (*Document, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return nil, errors.New("empty document")
	}
	var doc *Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("null document")
	}
	return doc, nil
}

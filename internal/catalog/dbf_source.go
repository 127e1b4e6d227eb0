package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/mareas/internal/dbf"
)

// Legacy file names. Lookup ignores case.
var legacyFiles = map[Table]string{
	TableSpecies:   "Especies.dbf",
	TableObservers: "OBSERVAD.DBF",
	TableVessels:   "buques y sus datos.DBF",
}

type DBFSource struct {
	dir  string
	opts dbf.Options
}

var _ Source = (*DBFSource)(nil)

func NewDBFSource(dir, codepage string) *DBFSource {
	return &DBFSource{dir: dir, opts: dbf.Options{Codepage: codepage}}
}

func (s *DBFSource) Name() string { return "dbf:" + s.dir }

func (s *DBFSource) Rows(ctx context.Context, table Table) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.resolve(table)
	if err != nil {
		return nil, err
	}
	raw, err := dbf.ReadFile(ctx, path, s.opts)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(raw))
	for _, r := range raw {
		out = append(out, Record(r))
	}
	return out, nil
}

func (s *DBFSource) resolve(table Table) (string, error) {
	want, ok := legacyFiles[table]
	if !ok {
		return "", fmt.Errorf("catalog: unknown table %q", table)
	}
	exact := filepath.Join(s.dir, want)
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("catalog: read dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), want) {
			return filepath.Join(s.dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("catalog: %s not found in %s: %w", want, s.dir, os.ErrNotExist)
}

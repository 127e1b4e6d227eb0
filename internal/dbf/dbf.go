// Package dbf reads dBase III and FoxPro tables, the format the legacy
// catalogs ship in. Parsing is done by go-dbase; this package fixes the
// options the catalogs need and flattens rows to upper-cased string maps.
package dbf

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/valentin-kaiser/go-dbase/dbase"
	"golang.org/x/text/encoding/charmap"
)

var ErrUnknownCodepage = errors.New("dbf: unknown code page")

const dateLayout = "2006-01-02"

type Options struct {
	// Codepage names the text encoding, e.g. "cp1252" (the default), "cp850",
	// "cp437" or "iso-8859-1".
	Codepage string
}

// Charmap resolves a code page name.
func Charmap(name string) (*charmap.Charmap, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cp1252", "windows-1252":
		return charmap.Windows1252, nil
	case "cp850", "ibm850":
		return charmap.CodePage850, nil
	case "cp437", "ibm437":
		return charmap.CodePage437, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodepage, name)
	}
}

type Table struct {
	path string
	file *dbase.File
}

// Open opens the table read-only. The legacy catalogs are dBase III files,
// which go-dbase reads only with Untested set.
func Open(path string, opts Options) (*Table, error) {
	cm, err := Charmap(opts.Codepage)
	if err != nil {
		return nil, err
	}
	file, err := dbase.OpenTable(&dbase.Config{
		Filename:   path,
		Converter:  dbase.NewDefaultConverter(cm),
		TrimSpaces: true,
		ReadOnly:   true,
		Untested:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("dbf: open %s: %w", path, err)
	}
	return &Table{path: path, file: file}, nil
}

func (t *Table) Close() error { return t.file.Close() }

// Records returns the live rows keyed by upper-cased column name. Deleted
// rows are skipped.
func (t *Table) Records(ctx context.Context) ([]map[string]string, error) {
	var out []map[string]string
	for i := 0; !t.file.EOF(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := t.file.Next()
		if err != nil {
			return nil, fmt.Errorf("dbf: %s row %d: %w", t.path, i, err)
		}
		if row.Deleted {
			continue
		}
		values, err := row.ToMap()
		if err != nil {
			return nil, fmt.Errorf("dbf: %s row %d: %w", t.path, i, err)
		}
		rec := make(map[string]string, len(values))
		for name, v := range values {
			rec[strings.ToUpper(strings.TrimSpace(name))] = format(v)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadFile opens path, reads every live row and closes the table.
func ReadFile(ctx context.Context, path string, opts Options) ([]map[string]string, error) {
	t, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer t.Close()
	return t.Records(ctx)
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []byte:
		return strings.TrimSpace(string(x))
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		if x {
			return "T"
		}
		return "F"
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(dateLayout)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// Package dbftest writes small dBase III tables for tests.
package dbftest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

type Column struct {
	Name     string
	Type     byte
	Length   int
	Decimals int
}

// Char is a character column.
func Char(name string, length int) Column { return Column{Name: name, Type: 'C', Length: length} }

// Num is an integer numeric column, stored right-aligned as text.
func Num(name string, length int) Column { return Column{Name: name, Type: 'N', Length: length} }

// Decimal is a numeric column with a fixed number of decimals.
func Decimal(name string, length, decimals int) Column {
	return Column{Name: name, Type: 'N', Length: length, Decimals: decimals}
}

// Row is one record. Deleted marks it with the '*' flag.
type Row struct {
	Values  []string
	Deleted bool
}

// Build encodes the table. Text is encoded as Windows-1252.
func Build(cols []Column, rows []Row) ([]byte, error) {
	recordLen := 1
	for _, c := range cols {
		recordLen += c.Length
	}
	headerLen := 32 + 32*len(cols) + 1

	var buf bytes.Buffer
	header := make([]byte, 32)
	header[0] = 0x03
	header[1], header[2], header[3] = 125, 10, 14
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(rows)))
	binary.LittleEndian.PutUint16(header[8:10], uint16(headerLen))
	binary.LittleEndian.PutUint16(header[10:12], uint16(recordLen))
	buf.Write(header)

	offset := 1
	for _, c := range cols {
		d := make([]byte, 32)
		copy(d[:11], strings.ToUpper(c.Name))
		d[11] = c.Type
		binary.LittleEndian.PutUint32(d[12:16], uint32(offset))
		offset += c.Length
		d[16] = byte(c.Length)
		d[17] = byte(c.Decimals)
		buf.Write(d)
	}
	buf.WriteByte(0x0D)

	enc := charmap.Windows1252.NewEncoder()
	for i, r := range rows {
		if len(r.Values) != len(cols) {
			return nil, fmt.Errorf("dbftest: row %d has %d values, want %d", i, len(r.Values), len(cols))
		}
		if r.Deleted {
			buf.WriteByte('*')
		} else {
			buf.WriteByte(' ')
		}
		for j, c := range cols {
			encoded, err := enc.String(r.Values[j])
			if err != nil {
				return nil, fmt.Errorf("dbftest: row %d: %w", i, err)
			}
			if len(encoded) > c.Length {
				encoded = encoded[:c.Length]
			}
			if c.Type == 'N' {
				buf.WriteString(strings.Repeat(" ", c.Length-len(encoded)) + encoded)
			} else {
				buf.WriteString(encoded + strings.Repeat(" ", c.Length-len(encoded)))
			}
		}
	}
	buf.WriteByte(0x1A)
	return buf.Bytes(), nil
}

// WriteFile builds the table and writes it to path.
func WriteFile(path string, cols []Column, rows []Row) error {
	raw, err := Build(cols, rows)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

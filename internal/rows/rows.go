// Package rows reads the tabular source data the store is built from.
// A Row maps column name to a scalar: cells that parse as integers become
// int, everything else stays a string, and empty cells are left out so
// that presence checks mean "the column has a value".
package rows

import (
	"encoding/csv"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dex-api/internal/errors"
)

// Source file names inside the data filesystem
const (
	FileSpecies         = "pokemon.csv"
	FileEvolutions      = "evolution.csv"
	FileMoves           = "moves.csv"
	FileMoveNames       = "move_names.csv"
	FileMoveMeta        = "move_meta.csv"
	FileMoveStatChanges = "move_meta_stat_changes.csv"
	FileEffects         = "move_effect_prose.csv"
	FileItems           = "items.csv"
	FileSpeciesMoves    = "pokemon_moves.csv"
)

// Row is one record keyed by column name
type Row map[string]any

// Has reports whether the column has a value
func (r Row) Has(col string) bool {
	_, ok := r[col]
	return ok
}

// Int returns an integer cell. ok is false when the cell is absent or not
// an integer.
func (r Row) Int(col string) (int, bool) {
	v, ok := r[col].(int)
	return v, ok
}

// IntPtr returns an integer cell as an optional value
func (r Row) IntPtr(col string) *int {
	v, ok := r.Int(col)
	if !ok {
		return nil
	}
	return &v
}

// String returns a cell as text. Integer cells are formatted back.
func (r Row) String(col string) (string, bool) {
	switch v := r[col].(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// Ints splits a whitespace-separated list of integers. A single integer
// cell yields a one-element slice; an absent cell yields nil.
func (r Row) Ints(col string) ([]int, error) {
	switch v := r[col].(type) {
	case nil:
		return nil, nil
	case int:
		return []int{v}, nil
	case string:
		fields := strings.Fields(v)
		out := make([]int, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.InvalidArgumentf("column %s: %q is not an integer", col, f)
			}
			out = append(out, n)
		}
		return out, nil
	default:
		return nil, errors.InvalidArgumentf("column %s: unsupported value %v", col, v)
	}
}

// Set is every table the store needs
type Set struct {
	Species         []Row
	Evolutions      []Row
	Moves           []Row
	MoveNames       []Row
	MoveMeta        []Row
	MoveStatChanges []Row
	Effects         []Row
	Items           []Row
	SpeciesMoves    []Row
}

// LoadFS reads all tables from fsys
func LoadFS(fsys fs.FS) (*Set, error) {
	set := &Set{}
	targets := []struct {
		name string
		dst  *[]Row
	}{
		{FileSpecies, &set.Species},
		{FileEvolutions, &set.Evolutions},
		{FileMoves, &set.Moves},
		{FileMoveNames, &set.MoveNames},
		{FileMoveMeta, &set.MoveMeta},
		{FileMoveStatChanges, &set.MoveStatChanges},
		{FileEffects, &set.Effects},
		{FileItems, &set.Items},
		{FileSpeciesMoves, &set.SpeciesMoves},
	}

	for _, t := range targets {
		f, err := fsys.Open(t.name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", t.name)
		}
		rows, err := Read(f)
		_ = f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", t.name)
		}
		*t.dst = rows
	}

	return set, nil
}

// Read parses CSV with a header row
func Read(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i >= len(record) || record[i] == "" {
				continue
			}
			if n, err := strconv.Atoi(strings.TrimSpace(record[i])); err == nil {
				row[col] = n
			} else {
				row[col] = record[i]
			}
		}
		out = append(out, row)
	}
}

package nouns

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ulikunitz/xz"
)

//go:embed data/gendered-nouns.json
var defaultData []byte

var (
	defaultDictionary     *Dictionary
	defaultDictionaryErr  error
	defaultDictionaryOnce sync.Once
)

// Default returns the embedded dataset. It is parsed once and shared by all callers.
func Default() *Dictionary {
	defaultDictionaryOnce.Do(func() {
		defaultDictionary, defaultDictionaryErr = ReadJSON(bytes.NewReader(defaultData))
	})
	if defaultDictionaryErr != nil {
		// the embedded file is part of the build; failing here is a packaging bug
		panic(fmt.Sprintf("nouns: embedded dataset is invalid: %v", defaultDictionaryErr))
	}
	return defaultDictionary
}

// gdnWord is one word in the JSON layout.
type gdnWord struct {
	Gender    Gender            `json:"gender"`
	GenderMap map[Gender]string `json:"gender_map"`
	Warning   []string          `json:"warning,omitempty"`
}

// ReadJSON reads a dictionary in the ".gdn" JSON layout.
func ReadJSON(r io.Reader) (*Dictionary, error) {
	var raw map[string]gdnWord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode noun data: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for word, w := range raw {
		if word == "" {
			return nil, fmt.Errorf("noun data contains an empty word")
		}
		if _, err := ParseGender(string(w.Gender)); err != nil {
			return nil, fmt.Errorf("noun %q: %w", word, err)
		}
		entries = append(entries, Entry{Word: word, Gender: w.Gender, Forms: w.GenderMap, Warnings: w.Warning})
	}
	return NewDictionary(entries...), nil
}

// WriteJSON writes d in the ".gdn" JSON layout, with sorted keys and warnings.
func WriteJSON(w io.Writer, d *Dictionary) error {
	out := make(map[string]gdnWord, d.Len())
	for _, word := range d.Words() {
		e := d.entries[word]
		warnings := append([]string(nil), e.Warnings...)
		sort.Strings(warnings)
		forms := e.Forms
		if forms == nil {
			forms = map[Gender]string{}
		}
		out[word] = gdnWord{Gender: e.Gender, GenderMap: forms, Warning: warnings}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(out)
}

// format is the storage format of a dataset file, derived from its extension.
type format int

const (
	formatJSON format = iota
	formatXZ
	formatSQLite
)

func formatOf(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		return formatXZ
	case ".db", ".sqlite", ".sqlite3":
		return formatSQLite
	default:
		return formatJSON
	}
}

// LoadFile reads a dictionary from path. The format is chosen by extension:
// ".xz" is xz-compressed JSON, ".db"/".sqlite" is SQLite, anything else is JSON.
func LoadFile(ctx context.Context, path string) (*Dictionary, error) {
	if formatOf(path) == formatSQLite {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to open noun database: %w", err)
		}
		db, err := sql.Open(sqliteDriver, path)
		if err != nil {
			return nil, fmt.Errorf("failed to open noun database: %w", err)
		}
		defer db.Close()
		return ReadSQLite(ctx, db)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open noun data: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if formatOf(path) == formatXZ {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress noun data: %w", err)
		}
		r = xr
	}
	return ReadJSON(r)
}

// SaveFile writes d to path, choosing the format by extension like LoadFile.
func SaveFile(ctx context.Context, path string, d *Dictionary) error {
	if formatOf(path) == formatSQLite {
		db, err := sql.Open(sqliteDriver, path)
		if err != nil {
			return fmt.Errorf("failed to open noun database: %w", err)
		}
		defer db.Close()
		return WriteSQLite(ctx, db, d)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create noun data file: %w", err)
	}
	defer f.Close()

	if formatOf(path) != formatXZ {
		return WriteJSON(f, d)
	}
	xw, err := xz.NewWriter(f)
	if err != nil {
		return fmt.Errorf("failed to compress noun data: %w", err)
	}
	if err := WriteJSON(xw, d); err != nil {
		xw.Close()
		return err
	}
	return xw.Close()
}

package nouns

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func entriesOf(d *Dictionary) map[string]Entry {
	out := make(map[string]Entry, d.Len())
	for _, w := range d.Words() {
		e, _ := d.Lookup(w)
		out[w] = e
	}
	return out
}

func sampleDictionary() *Dictionary {
	return NewDictionary(
		Entry{Word: "aunt", Gender: Female, Forms: map[Gender]string{Male: "uncle", Neutral: "auncle"}},
		Entry{Word: "uncle", Gender: Male, Forms: map[Gender]string{Female: "aunt", Neutral: "auncle"}},
		Entry{
			Word:     "auncle",
			Gender:   Neutral,
			Forms:    map[Gender]string{Female: "aunt", Male: "uncle"},
			Warnings: []string{"a generated word", "b linked word"},
		},
	)
}

func assertSameDictionary(t *testing.T, want, got *Dictionary) {
	t.Helper()
	if diff := cmp.Diff(entriesOf(want), entriesOf(got), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("dictionary mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSON(t *testing.T) {
	input := `{
		"actress": {"gender": "female", "gender_map": {"male": "actor", "neutral": "actor"}},
		"actor": {"gender": "neutral", "gender_map": {"female": "actress"}, "warning": ["guessed"]}
	}`
	d, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
	e, _ := d.Lookup("actor")
	if diff := cmp.Diff([]string{"guessed"}, e.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{`},
		{"unknown gender", `{"x": {"gender": "other", "gender_map": {}}}`},
		{"empty word", `{"": {"gender": "male", "gender_map": {}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadJSON succeeded, want error")
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := sampleDictionary()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, want); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	assertSameDictionary(t, want, got)
}

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"nouns.gdn", "nouns.gdn.xz", "nouns.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			want := sampleDictionary()
			if err := SaveFile(ctx, path, want); err != nil {
				t.Fatalf("SaveFile failed: %v", err)
			}
			got, err := LoadFile(ctx, path)
			if err != nil {
				t.Fatalf("LoadFile failed: %v", err)
			}
			assertSameDictionary(t, want, got)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for _, name := range []string{"missing.gdn", "missing.xz", "missing.sqlite"} {
		if _, err := LoadFile(ctx, filepath.Join(dir, name)); err == nil {
			t.Errorf("LoadFile(%s) succeeded, want error", name)
		}
	}
}

func TestSQLiteRewrite(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open(sqliteDriver, filepath.Join(t.TempDir(), "nouns.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := WriteSQLite(ctx, db, Default()); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	// a second write replaces the table content instead of appending
	if err := WriteSQLite(ctx, db, sampleDictionary()); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	got, err := ReadSQLite(ctx, db)
	if err != nil {
		t.Fatalf("ReadSQLite failed: %v", err)
	}
	assertSameDictionary(t, sampleDictionary(), got)
}

package genderrender

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPronounData(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want PronounData
	}{
		{
			name: "canonical keys",
			raw:  map[string]interface{}{"subject": "they"},
			want: PronounData{"": {"subject": "they"}},
		},
		{
			name: "synonyms",
			raw:  map[string]interface{}{"they": "xe", "them": "xem", "Doe": "Smith", "first-name": "Sam"},
			want: PronounData{"": {"subject": "xe", "object": "xem", "surname": "Smith", "personal-name": "Sam"}},
		},
		{
			name: "keys ignore case",
			raw:  map[string]interface{}{"Subject": "she", "THEIRS": "hers"},
			want: PronounData{"": {"subject": "she", "ipossessive": "hers"}},
		},
		{
			name: "custom attributes",
			raw:  map[string]interface{}{"_pet": "cat", "<home>": "Berlin"},
			want: PronounData{"": {"<pet>": "cat", "<home>": "Berlin"}},
		},
		{
			name: "several ids",
			raw: map[string]interface{}{
				"foo": map[string]interface{}{"they": "she"},
				"bar": map[string]interface{}{"object": "him", "gender-nouns": "male"},
			},
			want: PronounData{
				"foo": {"subject": "she"},
				"bar": {"object": "him", "gender-nouns": "male"},
			},
		},
		{
			name: "empty",
			raw:  map[string]interface{}{},
			want: PronounData{"": {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPronounData(tt.raw, SilentDiagnostics())
			if err != nil {
				t.Fatalf("NewPronounData returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewPronounData mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewPronounData_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		kind error
	}{
		{"mixed shapes", map[string]interface{}{"subject": "they", "foo": map[string]interface{}{}}, ErrInvalidPronounData},
		{"number value", map[string]interface{}{"subject": 3.0}, ErrInvalidPronounData},
		{"nested number", map[string]interface{}{"foo": map[string]interface{}{"subject": true}}, ErrInvalidPronounData},
		{"empty id", map[string]interface{}{"": map[string]interface{}{"subject": "they"}}, ErrInvalidPronounData},
		{"empty attribute", map[string]interface{}{"": "they"}, ErrInvalidPronounData},
		{"empty attribute with id", map[string]interface{}{"foo": map[string]interface{}{"": "they"}}, ErrInvalidPronounData},
		{"doubled", map[string]interface{}{"subject": "a", "they": "b"}, ErrDoubledInformation},
		{"doubled custom", map[string]interface{}{"_pet": "a", "pet": "b"}, ErrDoubledInformation},
		{"invalid gender-nouns", map[string]interface{}{"gender-nouns": "other"}, ErrInvalidInformation},
		{"invalid gender-addressing", map[string]interface{}{"gender-addressing": "no"}, ErrInvalidInformation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPronounData(tt.raw, SilentDiagnostics())
			if !errors.Is(err, tt.kind) {
				t.Errorf("NewPronounData error = %v, want %v", err, tt.kind)
			}
			if !errors.Is(err, ErrInvalidPronounData) {
				t.Errorf("Expected %v to match ErrInvalidPronounData", err)
			}
		})
	}
}

func TestNewPronounData_UnknownProperty(t *testing.T) {
	rec := &DiagnosticRecorder{}
	got, err := NewPronounData(map[string]interface{}{"pet": "cat", "subject": "she"}, DiagnosticSettings{Handler: rec})
	if err != nil {
		t.Fatalf("NewPronounData returned error: %v", err)
	}
	if got[""]["<pet>"] != "cat" {
		t.Errorf("Expected pet to be kept as <pet>, got %v", got)
	}
	if rec.Count(UnknownProperty) != 1 {
		t.Errorf("UnknownProperty count = %d, want 1", rec.Count(UnknownProperty))
	}
}

func TestNewPronounData_DoesNotModifyInput(t *testing.T) {
	raw := map[string]interface{}{"they": "she", "_pet": "cat"}
	if _, err := NewPronounData(raw, SilentDiagnostics()); err != nil {
		t.Fatalf("NewPronounData returned error: %v", err)
	}
	want := map[string]interface{}{"they": "she", "_pet": "cat"}
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Errorf("Input was modified (-want +got):\n%s", diff)
	}
}

func TestParsePronounDataJSON(t *testing.T) {
	got, err := ParsePronounDataJSON([]byte(`{"sam": {"they": "she"}, "kim": {"subject": "he"}}`), SilentDiagnostics())
	if err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	want := PronounData{"sam": {"subject": "she"}, "kim": {"subject": "he"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePronounDataJSON mismatch (-want +got):\n%s", diff)
	}

	for _, input := range []string{`[]`, `"they"`, `{"subject": ["they"]}`, `{`} {
		if _, err := ParsePronounDataJSON([]byte(input), SilentDiagnostics()); !errors.Is(err, ErrInvalidPronounData) {
			t.Errorf("ParsePronounDataJSON(%s) error = %v, want ErrInvalidPronounData", input, err)
		}
	}
}

func TestParsePronounDataYAML(t *testing.T) {
	input := `
sam:
  they: she
  gender-addressing: false
kim:
  subject: he
  gender-nouns: male
`
	got, err := ParsePronounDataYAML([]byte(input), SilentDiagnostics())
	if err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	want := PronounData{
		"sam": {"subject": "she", "gender-addressing": "false"},
		"kim": {"subject": "he", "gender-nouns": "male"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParsePronounDataYAML mismatch (-want +got):\n%s", diff)
	}

	for _, input := range []string{"- they\n- them\n", "subject: [they]\n", "they\n", "a: b: c"} {
		if _, err := ParsePronounDataYAML([]byte(input), SilentDiagnostics()); !errors.Is(err, ErrInvalidPronounData) {
			t.Errorf("ParsePronounDataYAML(%q) error = %v, want ErrInvalidPronounData", input, err)
		}
	}
}

func TestLoadPronounDataFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return path
	}

	tests := []struct {
		name       string
		file       string
		content    string
		unexpected bool
	}{
		{"grpd", "people.grpd", `{"sam": {"subject": "she"}}`, false},
		{"idpd", "sam.idpd", `{"subject": "she"}`, false},
		{"json", "sam.json", `{"subject": "she"}`, false},
		{"yaml", "sam.yaml", "subject: she\n", false},
		{"yml", "sam.yml", "subject: she\n", false},
		{"other extension", "sam.txt", `{"subject": "she"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &DiagnosticRecorder{}
			pd, err := LoadPronounDataFile(write(tt.file, tt.content), DiagnosticSettings{Handler: rec})
			if err != nil {
				t.Fatalf("Failed to load %s: %v", tt.file, err)
			}
			if len(pd) != 1 {
				t.Errorf("Got %d ids, want 1", len(pd))
			}
			if got := rec.Has(UnexpectedFileFormat); got != tt.unexpected {
				t.Errorf("UnexpectedFileFormat reported = %v, want %v", got, tt.unexpected)
			}
		})
	}

	if _, err := LoadPronounDataFile(filepath.Join(dir, "missing.grpd"), SilentDiagnostics()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Loading a missing file returned %v, want os.ErrNotExist", err)
	}
	broken := write("broken.grpd", `{"subject": 1}`)
	if _, err := LoadPronounDataFile(broken, SilentDiagnostics()); !IsPronounDataError(err) {
		t.Errorf("Loading invalid data returned %v, want a pronoun data error", err)
	}
}

func TestPronounData_Clone(t *testing.T) {
	pd := PronounData{"sam": {"subject": "she"}}
	c := pd.Clone()
	c["sam"]["subject"] = "he"
	if pd["sam"]["subject"] != "she" {
		t.Error("Clone shares maps with the original")
	}
	if !(PronounData{"": {}}).IsIndividual() || pd.IsIndividual() {
		t.Error("IsIndividual reports the wrong shape")
	}
}

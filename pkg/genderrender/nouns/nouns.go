package nouns

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Gender selects one gendered version of a noun.
type Gender string

const (
	Female  Gender = "female"
	Male    Gender = "male"
	Neutral Gender = "neutral"
)

// WordJoiner joins the tokens of multi-word entries.
const WordJoiner = "_"

// Genders lists all genders in a stable order.
var Genders = []Gender{Female, Male, Neutral}

// ParseGender converts a string to a Gender.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(s); g {
	case Female, Male, Neutral:
		return g, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// Entry is one word of the dataset together with its links to differently gendered words.
type Entry struct {
	Word     string
	Gender   Gender
	Forms    map[Gender]string
	Warnings []string
}

// Has reports whether the entry can be rendered in gender g without falling back.
func (e Entry) Has(g Gender) bool {
	if e.Gender == g {
		return true
	}
	_, ok := e.Forms[g]
	return ok
}

// Inflect returns the version of the word for gender g.
// Genders the entry has no version for fall back to the neutral version.
func (e Entry) Inflect(g Gender) string {
	if !e.Has(g) {
		g = Neutral
	}
	if e.Gender == g {
		return e.Word
	}
	if form, ok := e.Forms[g]; ok {
		return form
	}
	// no neutral version either; the word is its own best guess
	return e.Word
}

func (e Entry) clone() Entry {
	c := Entry{Word: e.Word, Gender: e.Gender, Forms: make(map[Gender]string, len(e.Forms))}
	for g, w := range e.Forms {
		c.Forms[g] = w
	}
	if len(e.Warnings) > 0 {
		c.Warnings = append([]string(nil), e.Warnings...)
	}
	return c
}

// NormalizeWord returns the lookup key for a word: lower case, NFC.
func NormalizeWord(word string) string {
	return norm.NFC.String(strings.ToLower(word))
}

// Dictionary is a read-only collection of entries. It is safe for concurrent use.
type Dictionary struct {
	entries map[string]Entry
}

// NewDictionary builds a dictionary from entries. Entries are copied, keyed by their
// normalized word; a later entry for the same word replaces an earlier one.
func NewDictionary(entries ...Entry) *Dictionary {
	d := &Dictionary{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		c := e.clone()
		c.Word = NormalizeWord(c.Word)
		d.entries[c.Word] = c
	}
	return d
}

// Lookup returns the entry for word. The lookup ignores case.
func (d *Dictionary) Lookup(word string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	e, ok := d.entries[NormalizeWord(word)]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Words returns all words in alphabetical order.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	words := make([]string, 0, len(d.entries))
	for w := range d.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Validate checks that every linked word exists and that every gender is known.
func (d *Dictionary) Validate() error {
	for _, w := range d.Words() {
		e := d.entries[w]
		if _, err := ParseGender(string(e.Gender)); err != nil {
			return fmt.Errorf("entry %q: %w", w, err)
		}
		for g, link := range e.Forms {
			if _, err := ParseGender(string(g)); err != nil {
				return fmt.Errorf("entry %q: %w", w, err)
			}
			if _, ok := d.entries[NormalizeWord(link)]; !ok {
				return fmt.Errorf("entry %q links to unknown word %q as its %s version", w, link, g)
			}
		}
	}
	return nil
}

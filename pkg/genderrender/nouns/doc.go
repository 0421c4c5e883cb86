// Package nouns provides the gendered-noun dataset used by gender*render to inflect
// common nouns ("actor", "waiter", "sibling") into their female, male or neutral forms.
//
// The dataset is a graph of words: every Entry records the word's own gender and links
// to its differently gendered versions. It is produced offline and consumed here
// read-only, so a Dictionary is safe to share between goroutines.
//
// # Formats
//
// A Dictionary can be read from:
//
//   - JSON in the ".gdn" layout: {"actress": {"gender": "female", "gender_map": {...}, "warning": [...]}}
//   - the same JSON compressed with xz (files ending in ".xz")
//   - a SQLite database (files ending in ".db" or ".sqlite") with a single "nouns" table
//
// Default returns a small dataset embedded in the binary.
//
// # Multi-word entries
//
// Words made of several tokens are joined with "_" (for example "police_officer").
// Entry.Inflect returns the joined form; callers decide how to display it.
package nouns

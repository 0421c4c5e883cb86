package nouns

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteDriver = "sqlite"

const schema = `CREATE TABLE IF NOT EXISTS nouns (
	word    TEXT PRIMARY KEY,
	gender  TEXT NOT NULL,
	female  TEXT,
	male    TEXT,
	neutral TEXT,
	warning TEXT
)`

// warningSeparator separates the warnings of one word in the warning column.
const warningSeparator = "\n"

// ReadSQLite reads all rows of the nouns table.
func ReadSQLite(ctx context.Context, db *sql.DB) (*Dictionary, error) {
	rows, err := db.QueryContext(ctx, `SELECT word, gender, female, male, neutral, warning FROM nouns`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nouns: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			word, gender                   string
			female, male, neutral, warning sql.NullString
		)
		if err := rows.Scan(&word, &gender, &female, &male, &neutral, &warning); err != nil {
			return nil, fmt.Errorf("failed to scan noun row: %w", err)
		}
		g, err := ParseGender(gender)
		if err != nil {
			return nil, fmt.Errorf("noun %q: %w", word, err)
		}

		e := Entry{Word: word, Gender: g, Forms: map[Gender]string{}}
		for _, form := range []struct {
			gender Gender
			value  sql.NullString
		}{{Female, female}, {Male, male}, {Neutral, neutral}} {
			if form.value.Valid && form.value.String != "" {
				e.Forms[form.gender] = form.value.String
			}
		}
		if warning.Valid && warning.String != "" {
			e.Warnings = strings.Split(warning.String, warningSeparator)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nouns: %w", err)
	}
	return NewDictionary(entries...), nil
}

// WriteSQLite creates the nouns table if needed and replaces its content with d.
func WriteSQLite(ctx context.Context, db *sql.DB, d *Dictionary) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create nouns table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM nouns`); err != nil {
		return fmt.Errorf("failed to clear nouns table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nouns (word, gender, female, male, neutral, warning) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, word := range d.Words() {
		e := d.entries[word]
		_, err := stmt.ExecContext(ctx, e.Word, string(e.Gender),
			nullable(e.Forms[Female]), nullable(e.Forms[Male]), nullable(e.Forms[Neutral]),
			nullable(strings.Join(e.Warnings, warningSeparator)))
		if err != nil {
			return fmt.Errorf("failed to insert noun %q: %w", word, err)
		}
	}
	return tx.Commit()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

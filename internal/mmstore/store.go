// Package mmstore persists an accepted formal system to a SQLite file and
// reloads it, backing the "prebuilt canonical data" construction mode of
// internal/mm.FormalSystem with a concrete file on disk instead of merely
// describing it. Each row stores a label plus its canonical proposition
// serialized with internal/mmdb's YAML codec; reloading never re-runs
// Normalize or CheckProof, since a snapshot is only ever written from a
// system that already passed them once.
package mmstore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/lixiang90/formalmath/internal/mm"
	"github.com/lixiang90/formalmath/internal/mmdb"
)

// Store wraps a SQLite-backed snapshot file.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and migrates the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot store: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS constants (
			ordinal INTEGER PRIMARY KEY,
			label   TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS axioms (
			ordinal INTEGER PRIMARY KEY,
			label   TEXT NOT NULL UNIQUE,
			body    TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS theorems (
			ordinal INTEGER PRIMARY KEY,
			label   TEXT NOT NULL UNIQUE,
			body    TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrating snapshot store: %w", err)
		}
	}
	return nil
}

// Save writes every constant, axiom, and theorem of sys to the store,
// overwriting whatever was there before. The write happens in one
// transaction: a caller never observes a half-written snapshot.
func (s *Store) Save(sys *mm.FormalSystem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"constants", "axioms", "theorems"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, label := range sys.Constants() {
		if _, err := tx.Exec(`INSERT INTO constants (ordinal, label) VALUES (?, ?)`, i, label); err != nil {
			return fmt.Errorf("saving constant %s: %w", label, err)
		}
	}

	for i, label := range sys.AxiomLabels() {
		prop, _ := sys.Axiom(label)
		body, err := mmdb.Encode(nil, []string{label}, map[string]*mm.Proposition{label: prop}, nil, nil)
		if err != nil {
			return fmt.Errorf("encoding axiom %s: %w", label, err)
		}
		if _, err := tx.Exec(`INSERT INTO axioms (ordinal, label, body) VALUES (?, ?, ?)`, i, label, body); err != nil {
			return fmt.Errorf("saving axiom %s: %w", label, err)
		}
	}

	for i, label := range sys.TheoremLabels() {
		prop, _ := sys.Theorem(label)
		body, err := mmdb.Encode(nil, nil, nil, []string{label}, map[string]*mm.Proposition{label: prop})
		if err != nil {
			return fmt.Errorf("encoding theorem %s: %w", label, err)
		}
		if _, err := tx.Exec(`INSERT INTO theorems (ordinal, label, body) VALUES (?, ?, ?)`, i, label, body); err != nil {
			return fmt.Errorf("saving theorem %s: %w", label, err)
		}
	}

	return tx.Commit()
}

// Load reconstructs a FormalSystem from the store via
// mm.NewFromCanonical, in ordinal order.
func (s *Store) Load() (*mm.FormalSystem, error) {
	constants, err := s.loadConstants()
	if err != nil {
		return nil, err
	}
	axiomLabels, axioms, err := s.loadPropositions("axioms")
	if err != nil {
		return nil, err
	}
	theoremLabels, theorems, err := s.loadPropositions("theorems")
	if err != nil {
		return nil, err
	}
	return mm.NewFromCanonical(constants, axiomLabels, axioms, theoremLabels, theorems)
}

func (s *Store) loadConstants() ([]string, error) {
	rows, err := s.db.Query(`SELECT label FROM constants ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("loading constants: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scanning constant row: %w", err)
		}
		out = append(out, label)
	}
	return out, rows.Err()
}

func (s *Store) loadPropositions(table string) ([]string, map[string]*mm.Proposition, error) {
	rows, err := s.db.Query(fmt.Sprintf(`SELECT label, body FROM %s ORDER BY ordinal`, table))
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", table, err)
	}
	defer rows.Close()

	var labels []string
	props := make(map[string]*mm.Proposition)
	for rows.Next() {
		var label, body string
		if err := rows.Scan(&label, &body); err != nil {
			return nil, nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		_, axioms, _, theorems, err := decodeSingle(body)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding %s %s: %w", table, label, err)
		}
		prop, ok := axioms[label]
		if !ok {
			prop, ok = theorems[label]
		}
		if !ok {
			return nil, nil, fmt.Errorf("%s %s: stored body did not contain its own label", table, label)
		}
		labels = append(labels, label)
		props[label] = prop
	}
	return labels, props, rows.Err()
}

// decodeSingle unwraps mmdb.Decode's five-value signature into the two
// proposition maps callers of loadPropositions actually need.
func decodeSingle(body string) (axiomLabels []string, axioms map[string]*mm.Proposition, theoremLabels []string, theorems map[string]*mm.Proposition, err error) {
	_, axiomLabels, axioms, theoremLabels, theorems, err = mmdb.Decode([]byte(body))
	return
}

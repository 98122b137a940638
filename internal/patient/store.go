package patient

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ward/internal/logging"
	"ward/internal/resource"

	_ "modernc.org/sqlite" // pure-Go sqlite driver, no CGO required
)

// Store persists the patient roster in sqlite. It is safe for concurrent
// use; individual operations are atomic.
type Store struct {
	db     *sql.DB
	logger logging.Interface
}

// NewStore opens (creating if necessary) the sqlite database at path and
// applies migrations.
func NewStore(path string, logger logging.Interface) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS patients (
		id TEXT PRIMARY KEY,
		mrn TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		ward TEXT NOT NULL,
		age INTEGER NOT NULL,
		status TEXT NOT NULL,
		admitted_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_patients_name ON patients(name COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_patients_status ON patients(status);
	CREATE INDEX IF NOT EXISTS idx_patients_mrn ON patients(mrn);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save upserts patients in a single transaction, keyed by MRN. Returns the
// number of rows written.
func (s *Store) Save(ctx context.Context, patients ...*Patient) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO patients (id, mrn, name, ward, age, status, admitted_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(mrn) DO UPDATE SET
			name = excluded.name,
			ward = excluded.ward,
			age = excluded.age,
			status = excluded.status,
			admitted_at = excluded.admitted_at,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	var n int
	for _, p := range patients {
		if _, err := stmt.ExecContext(ctx,
			p.ID.String(), p.MRN, p.Name, p.Ward, p.Age, string(p.Status),
			p.AdmittedAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return 0, fmt.Errorf("upserting patient %s: %w", p.MRN, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return n, nil
}

type ListOptions struct {
	// Search filters patients by a case-insensitive match against name or
	// MRN. Optional.
	Search string
	// Status filters patients by admission status. The zero value matches
	// all statuses.
	Status Status
	// Limit caps the number of returned rows; zero means no cap.
	Limit int
	// Offset skips that many rows.
	Offset int
}

// List returns patients ordered by name then MRN, filtered and paged
// according to opts.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]*Patient, error) {
	var (
		where []string
		args  []any
	)
	if opts.Search != "" {
		where = append(where, "(name LIKE ? COLLATE NOCASE OR mrn LIKE ? COLLATE NOCASE)")
		pattern := "%" + opts.Search + "%"
		args = append(args, pattern, pattern)
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}

	q := "SELECT id, mrn, name, ward, age, status, admitted_at, updated_at FROM patients"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY name COLLATE NOCASE, mrn"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			q += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

// Count returns the total number of patients in the roster.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM patients").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting patients: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func scanPatient(rows *sql.Rows) (*Patient, error) {
	var (
		p                             Patient
		id, status, admitted, updated string
	)
	if err := rows.Scan(&id, &p.MRN, &p.Name, &p.Ward, &p.Age, &status, &admitted, &updated); err != nil {
		return nil, fmt.Errorf("scanning patient: %w", err)
	}

	rid, err := resource.IDFromString(id)
	if err != nil {
		return nil, err
	}
	p.ID = rid
	p.Status = Status(status)

	if p.AdmittedAt, err = time.Parse(time.RFC3339, admitted); err != nil {
		return nil, fmt.Errorf("parsing admission time: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return nil, fmt.Errorf("parsing update time: %w", err)
	}
	return &p, nil
}

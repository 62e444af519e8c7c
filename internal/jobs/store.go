// Package jobs persiste les travaux d'extraction du daemon dans SQLite.
// Un job traverse pending -> processing -> completed|error ; le store ne
// connaît rien du pipeline, seulement les transitions et le résultat.
package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Status : état d'un job. Les valeurs sont exposées telles quelles par l'API.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// ErrNotFound : aucun job sous cet identifiant.
var ErrNotFound = errors.New("job not found")

// Job : un travail d'extraction et son résultat.
type Job struct {
	ID       string
	URL      string
	Status   Status
	Progress string

	// Result et Summary : documents markdown produits, vides tant que le
	// job n'est pas completed. Error porte le message en cas d'échec.
	Result  string
	Summary string
	Error   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store : accès SQLite aux jobs.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id         TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	status     TEXT NOT NULL,
	progress   TEXT NOT NULL DEFAULT '',
	result     TEXT NOT NULL DEFAULT '',
	summary    TEXT NOT NULL DEFAULT '',
	error      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
`

// Open ouvre (ou crée) la base au chemin donné et applique le schéma.
// WAL + busy_timeout : le daemon écrit depuis plusieurs goroutines.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ouverture de la base %s : %w", path, err)
	}
	// un seul writer à la fois côté SQLite, autant le sérialiser ici
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s : %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("application du schéma : %w", err)
	}
	return &Store{db: db}, nil
}

// Close ferme la base.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create enregistre un nouveau job pending et retourne sa copie.
func (s *Store) Create(ctx context.Context, jobURL string) (*Job, error) {
	now := time.Now().UTC()
	j := &Job{
		ID:        uuid.NewString(),
		URL:       jobURL,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, url, status, progress, result, summary, error, created_at, updated_at)
		 VALUES (?, ?, ?, '', '', '', '', ?, ?)`,
		j.ID, j.URL, j.Status, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insertion du job : %w", err)
	}
	return j, nil
}

// UpdateProgress passe le job en processing avec la ligne d'avancement.
func (s *Store) UpdateProgress(ctx context.Context, id, progress string) error {
	return s.update(ctx,
		`UPDATE jobs SET status = ?, progress = ?, updated_at = ? WHERE id = ?`,
		StatusProcessing, progress, time.Now().UTC(), id)
}

// Complete enregistre le résultat final. summary peut être vide.
func (s *Store) Complete(ctx context.Context, id, result, summary string) error {
	return s.update(ctx,
		`UPDATE jobs SET status = ?, progress = ?, result = ?, summary = ?, updated_at = ? WHERE id = ?`,
		StatusCompleted, "Complete! 🎉", result, summary, time.Now().UTC(), id)
}

// Fail enregistre l'échec du job avec son message.
func (s *Store) Fail(ctx context.Context, id, msg string) error {
	return s.update(ctx,
		`UPDATE jobs SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		StatusError, msg, time.Now().UTC(), id)
}

func (s *Store) update(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mise à jour du job : %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get retourne le job, ou ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	j := &Job{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, url, status, progress, result, summary, error, created_at, updated_at
		 FROM jobs WHERE id = ?`, id).
		Scan(&j.ID, &j.URL, &j.Status, &j.Progress, &j.Result, &j.Summary, &j.Error,
			&j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture du job %s : %w", id, err)
	}
	return j, nil
}

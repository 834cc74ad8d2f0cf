// Package pgx provides a PostgreSQL-backed token store for gateway
// deployments that must survive restarts without a local filesystem.
package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorlink/authgate/core"
)

const defaultSubject = "default"

// Store keeps one token per subject in the authgate_tokens table. A
// single-user client uses the default subject; a gateway keys by its
// own tenant or instance name.
type Store struct {
	pool    *pgxpool.Pool
	subject string
}

var _ core.TokenStore = (*Store)(nil)

func New(pool *pgxpool.Pool, subject string) *Store {
	if subject == "" {
		subject = defaultSubject
	}
	return &Store{pool: pool, subject: subject}
}

// Migrate creates the backing table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS authgate_tokens (
			subject    text PRIMARY KEY,
			token      text NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create authgate_tokens: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (string, error) {
	var token string
	err := s.pool.QueryRow(ctx,
		`SELECT token FROM authgate_tokens WHERE subject = $1`, s.subject,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

func (s *Store) Save(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO authgate_tokens (subject, token, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (subject) DO UPDATE SET token = $2, updated_at = now()`,
		s.subject, token)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM authgate_tokens WHERE subject = $1`, s.subject)
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Store persists manual exclusions in the excluded_transactions table. Every
// mutation is a single statement so concurrent requests cannot lose updates.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Add(ctx context.Context, owner, id string) (bool, error) {
	query := `
		INSERT INTO excluded_transactions (owner, transaction_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (owner, transaction_id) DO NOTHING
	`

	res, err := s.db.ExecContext(ctx, query, owner, id)
	if err != nil {
		return false, fmt.Errorf("adding exclusion: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("adding exclusion: %w", err)
	}

	return n > 0, nil
}

func (s *Store) Remove(ctx context.Context, owner, id string) (bool, error) {
	query := `DELETE FROM excluded_transactions WHERE owner = $1 AND transaction_id = $2`

	res, err := s.db.ExecContext(ctx, query, owner, id)
	if err != nil {
		return false, fmt.Errorf("removing exclusion: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("removing exclusion: %w", err)
	}

	return n > 0, nil
}

func (s *Store) Clear(ctx context.Context, owner string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM excluded_transactions WHERE owner = $1`, owner)
	if err != nil {
		return 0, fmt.Errorf("clearing exclusions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing exclusions: %w", err)
	}

	return int(n), nil
}

func (s *Store) List(ctx context.Context, owner string) ([]string, error) {
	query := `
		SELECT transaction_id
		FROM excluded_transactions
		WHERE owner = $1
		ORDER BY transaction_id
	`

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing exclusions: %w", err)
	}
	defer rows.Close()

	var ids []string

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning exclusion: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exclusions: %w", err)
	}

	return ids, nil
}

func (s *Store) Contains(ctx context.Context, owner, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM excluded_transactions WHERE owner = $1 AND transaction_id = $2)`

	var ok bool
	if err := s.db.QueryRowContext(ctx, query, owner, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("checking exclusion: %w", err)
	}

	return ok, nil
}

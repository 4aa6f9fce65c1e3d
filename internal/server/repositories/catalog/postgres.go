// Package catalog provides the PostgreSQL-backed repository of the reference
// scholarship catalog served by the gateway.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/dbx"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Scholarship, error) {
	query := `
		SELECT id, title, provider, amount, deadline, eligibility_criteria, description,
			category, scope, link, target_community
		FROM scholarships
		WHERE active
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select scholarships: %w", err)
	}
	defer rows.Close()

	var result []models.Scholarship
	for rows.Next() {
		var s models.Scholarship
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Provider, &s.Amount, &s.Deadline, &s.EligibilityCriteria, &s.Description,
			&s.Category, &s.Scope, &s.Link, &s.TargetCommunity,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM scholarships`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count scholarships: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, s models.Scholarship) error {
	query := `
		INSERT INTO scholarships (id, title, provider, amount, deadline, eligibility_criteria, description,
			category, scope, link, target_community, active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE, now())
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			provider = EXCLUDED.provider,
			amount = EXCLUDED.amount,
			deadline = EXCLUDED.deadline,
			eligibility_criteria = EXCLUDED.eligibility_criteria,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			scope = EXCLUDED.scope,
			link = EXCLUDED.link,
			target_community = EXCLUDED.target_community,
			active = TRUE,
			updated_at = now();
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Title, s.Provider, s.Amount, s.Deadline, s.EligibilityCriteria, s.Description,
		string(s.Category), string(s.Scope), s.Link, s.TargetCommunity)
	if err != nil {
		return fmt.Errorf("failed to upsert scholarship[%s]: %w", s.ID, err)
	}
	return nil
}

func (r *PostgresRepository) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE scholarships SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate scholarship[%s]: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Seed loads items into an empty catalog inside one transaction. It returns
// the number of rows written, which is zero when the catalog already has
// data.
func Seed(ctx context.Context, db *sql.DB, items []models.Scholarship) (int, error) {
	n, err := NewPostgresRepository(db).Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewPostgresRepository(tx)
		for _, s := range items {
			if err := repo.Upsert(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return len(items), nil
}

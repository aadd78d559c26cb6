package acceptances

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophterms/internal/dbx"
	"github.com/dmitrijs2005/gophterms/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, a *models.Acceptance) error {
	query := `
		INSERT INTO terms_acceptances (user_id, collection_id, terms_hash, accepted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, collection_id)
		DO UPDATE SET terms_hash = EXCLUDED.terms_hash, accepted_at = EXCLUDED.accepted_at
	`
	if _, err := r.db.ExecContext(ctx, query, a.UserID, a.CollectionID, a.TermsHash, a.AcceptedAt); err != nil {
		return fmt.Errorf("failed to upsert terms_acceptances[%s/%s]: %w", a.UserID, a.CollectionID, err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Acceptance, error) {
	query := `
		SELECT user_id, collection_id, terms_hash, accepted_at
		FROM terms_acceptances
		WHERE user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list terms_acceptances[%s]: %w", userID, err)
	}
	defer rows.Close()

	var result []models.Acceptance
	for rows.Next() {
		var a models.Acceptance
		if err := rows.Scan(&a.UserID, &a.CollectionID, &a.TermsHash, &a.AcceptedAt); err != nil {
			return nil, fmt.Errorf("failed to scan terms_acceptances[%s]: %w", userID, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list terms_acceptances[%s]: %w", userID, err)
	}

	return result, nil
}

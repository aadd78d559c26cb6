package collections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophterms/internal/common"
	"github.com/dmitrijs2005/gophterms/internal/dbx"
	"github.com/dmitrijs2005/gophterms/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Collection) (*models.Collection, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO collections (id, name, description, terms, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Description, c.Terms, c.CreatorID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create collections[%s]: %w", c.ID, err)
	}

	return c, nil
}

// Get returns common.ErrorNotFound for ids that are not UUIDs, since no row
// can match them.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Collection, error) {
	if uuid.Validate(id) != nil {
		return nil, common.ErrorNotFound
	}

	query := `
		SELECT id, name, description, terms, creator_id, created_at, updated_at
		FROM collections
		WHERE id = $1
	`
	c := &models.Collection{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Terms, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get collections[%s]: %w", id, err)
	}

	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Collection, error) {
	query := `
		SELECT id, name, description, terms, creator_id, created_at, updated_at
		FROM collections
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	result := []models.Collection{}
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Terms, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collections: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateTerms(ctx context.Context, id string, terms string) (*models.Collection, error) {
	if uuid.Validate(id) != nil {
		return nil, common.ErrorNotFound
	}

	query := `
		UPDATE collections SET terms = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, name, description, terms, creator_id, created_at, updated_at
	`
	c := &models.Collection{}
	err := r.db.QueryRowContext(ctx, query, id, terms).
		Scan(&c.ID, &c.Name, &c.Description, &c.Terms, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to update collections[%s]: %w", id, err)
	}

	return c, nil
}

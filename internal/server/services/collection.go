package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophterms/internal/common"
	"github.com/dmitrijs2005/gophterms/internal/dbx"
	"github.com/dmitrijs2005/gophterms/internal/server/models"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/repomanager"
)

// CollectionService manages collections and their terms text.
type CollectionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCollectionService(db *sql.DB, m repomanager.RepositoryManager) *CollectionService {
	return &CollectionService{db: db, repomanager: m}
}

// Create stores a new collection owned by creatorID. Terms may be empty.
func (s *CollectionService) Create(ctx context.Context, creatorID, name, description, termsText string) (*models.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}

	c := &models.Collection{
		Name:        name,
		Description: description,
		Terms:       termsText,
		CreatorID:   creatorID,
	}
	created, err := s.repomanager.Collections(s.db).Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("error creating collection: %w", err)
	}
	return created, nil
}

func (s *CollectionService) Get(ctx context.Context, id string) (*models.Collection, error) {
	c, err := s.repomanager.Collections(s.db).Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading collection: %w", err)
	}
	return c, nil
}

func (s *CollectionService) List(ctx context.Context) ([]models.Collection, error) {
	list, err := s.repomanager.Collections(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing collections: %w", err)
	}
	return list, nil
}

// UpdateTerms replaces the terms of a collection. Only its creator may do
// so. Recorded acceptances are kept; they stop matching the new hash.
func (s *CollectionService) UpdateTerms(ctx context.Context, userID, id, termsText string) (*models.Collection, error) {
	var updated *models.Collection
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Collections(tx)

		c, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if c.CreatorID != userID {
			return common.ErrForbidden
		}

		updated, err = repo.UpdateTerms(ctx, id, termsText)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrForbidden) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating terms: %w", err)
	}
	return updated, nil
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophterms/internal/common"
	"github.com/dmitrijs2005/gophterms/internal/server/models"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophterms/internal/terms"
)

// TermsService records terms acceptances. The server is the only place
// that stamps the acceptance time.
type TermsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTermsService(db *sql.DB, m repomanager.RepositoryManager) *TermsService {
	return &TermsService{db: db, repomanager: m, now: time.Now}
}

// Accept records that userID accepted the terms of collectionID identified
// by hash. The hash must match the collection's current terms, otherwise
// ErrTermsMismatch is returned and nothing is stored.
func (s *TermsService) Accept(ctx context.Context, userID, collectionID, hash string) (*models.Acceptance, error) {
	c, err := s.repomanager.Collections(s.db).Get(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("error loading collection: %w", err)
	}

	if !terms.HasTerms(c.Terms) {
		return nil, common.ErrNoTerms
	}
	if hash != terms.Hash(c.Terms) {
		return nil, common.ErrTermsMismatch
	}

	a := &models.Acceptance{
		UserID:       userID,
		CollectionID: collectionID,
		TermsHash:    hash,
		AcceptedAt:   s.now().UTC(),
	}
	if err := s.repomanager.Acceptances(s.db).Upsert(ctx, a); err != nil {
		return nil, fmt.Errorf("error saving acceptance: %w", err)
	}
	return a, nil
}

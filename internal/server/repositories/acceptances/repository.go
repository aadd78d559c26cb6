// Package acceptances persists which terms hash a user last accepted for
// each collection.
package acceptances

import (
	"context"

	"github.com/dmitrijs2005/gophterms/internal/server/models"
)

type Repository interface {
	// Upsert records a, replacing any earlier acceptance of the same
	// (user, collection) pair.
	Upsert(ctx context.Context, a *models.Acceptance) error
	// ListByUser returns every acceptance of userID, including those whose
	// hash no longer matches the collection's current terms.
	ListByUser(ctx context.Context, userID string) ([]models.Acceptance, error)
}

// Package collections stores collections and their terms-of-use text.
package collections

import (
	"context"

	"github.com/dmitrijs2005/gophterms/internal/server/models"
)

type Repository interface {
	// Create inserts c. An empty c.ID is replaced by a new uuid.
	Create(ctx context.Context, c *models.Collection) (*models.Collection, error)
	Get(ctx context.Context, id string) (*models.Collection, error)
	List(ctx context.Context) ([]models.Collection, error)
	// UpdateTerms replaces the terms text. Existing acceptances are left
	// untouched.
	UpdateTerms(ctx context.Context, id string, terms string) (*models.Collection, error)
}

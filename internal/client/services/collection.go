package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophterms/internal/api"
	"github.com/dmitrijs2005/gophterms/internal/client/client"
)

// CollectionService reads and edits collections on the server.
type CollectionService interface {
	List(ctx context.Context) ([]api.Collection, error)
	Get(ctx context.Context, id string) (*api.Collection, error)
	Create(ctx context.Context, name, description, termsText string) (*api.Collection, error)
	UpdateTerms(ctx context.Context, id, termsText string) (*api.Collection, error)
}

type collectionService struct {
	client client.Client
}

func NewCollectionService(client client.Client) CollectionService {
	return &collectionService{client: client}
}

func (s *collectionService) List(ctx context.Context) ([]api.Collection, error) {
	list, err := s.client.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return list, nil
}

func (s *collectionService) Get(ctx context.Context, id string) (*api.Collection, error) {
	c, err := s.client.GetCollection(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", id, err)
	}
	return c, nil
}

func (s *collectionService) Create(ctx context.Context, name, description, termsText string) (*api.Collection, error) {
	c, err := s.client.CreateCollection(ctx, api.CreateCollectionRequest{
		Name:        name,
		Description: description,
		Terms:       termsText,
	})
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return c, nil
}

func (s *collectionService) UpdateTerms(ctx context.Context, id, termsText string) (*api.Collection, error) {
	c, err := s.client.UpdateTerms(ctx, id, termsText)
	if err != nil {
		return nil, fmt.Errorf("update terms of %s: %w", id, err)
	}
	return c, nil
}

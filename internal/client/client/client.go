package client

import (
	"context"

	"github.com/dmitrijs2005/gophterms/internal/api"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt []byte, verifier []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) error
	Logout()
	Ping(ctx context.Context) error
	Me(ctx context.Context) (*api.Profile, error)
	ListCollections(ctx context.Context) ([]api.Collection, error)
	GetCollection(ctx context.Context, id string) (*api.Collection, error)
	CreateCollection(ctx context.Context, req api.CreateCollectionRequest) (*api.Collection, error)
	UpdateTerms(ctx context.Context, id, termsText string) (*api.Collection, error)
	AcceptTerms(ctx context.Context, collectionID, hash string) error
}

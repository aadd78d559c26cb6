package services

import (
	"context"

	"github.com/dmitrijs2005/gophterms/internal/api"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	CloseErr    error
	RegisterErr error

	GetSaltRet []byte
	GetSaltErr error

	LoginErr error
	PingErr  error

	MeRet *api.Profile
	MeErr error

	ListRet []api.Collection
	GetRet  *api.Collection
	CollErr error

	AcceptErr error

	LastRegisterUser     string
	LastRegisterSalt     []byte
	LastRegisterVerifier []byte
	LastGetSaltUser      string
	LastLoginUser        string
	LastLoginVerifier    []byte
	LastCreate           api.CreateCollectionRequest
	LastUpdateID         string
	LastUpdateTerms      string

	LoggedOut int
	MeCalls   int
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Register(ctx context.Context, username string, salt []byte, verifier []byte) error {
	f.LastRegisterUser = username
	f.LastRegisterSalt = append([]byte(nil), salt...)
	f.LastRegisterVerifier = append([]byte(nil), verifier...)
	return f.RegisterErr
}

func (f *fakeClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	f.LastGetSaltUser = username
	return append([]byte(nil), f.GetSaltRet...), f.GetSaltErr
}

func (f *fakeClient) Login(ctx context.Context, username string, verifier []byte) error {
	f.LastLoginUser = username
	f.LastLoginVerifier = append([]byte(nil), verifier...)
	return f.LoginErr
}

func (f *fakeClient) Logout() { f.LoggedOut++ }

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Me(ctx context.Context) (*api.Profile, error) {
	f.MeCalls++
	return f.MeRet, f.MeErr
}

func (f *fakeClient) ListCollections(ctx context.Context) ([]api.Collection, error) {
	return f.ListRet, f.CollErr
}

func (f *fakeClient) GetCollection(ctx context.Context, id string) (*api.Collection, error) {
	return f.GetRet, f.CollErr
}

func (f *fakeClient) CreateCollection(ctx context.Context, req api.CreateCollectionRequest) (*api.Collection, error) {
	f.LastCreate = req
	return f.GetRet, f.CollErr
}

func (f *fakeClient) UpdateTerms(ctx context.Context, id, termsText string) (*api.Collection, error) {
	f.LastUpdateID = id
	f.LastUpdateTerms = termsText
	return f.GetRet, f.CollErr
}

func (f *fakeClient) AcceptTerms(ctx context.Context, collectionID, hash string) error {
	return f.AcceptErr
}

package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophterms/internal/api"
	"github.com/dmitrijs2005/gophterms/internal/client/acceptance"
	"github.com/dmitrijs2005/gophterms/internal/client/client"
	"github.com/dmitrijs2005/gophterms/internal/client/config"
	"github.com/dmitrijs2005/gophterms/internal/client/session"
	"github.com/dmitrijs2005/gophterms/internal/logging"
	"github.com/dmitrijs2005/gophterms/internal/terms"
)

type fakeAuth struct {
	loginID  *session.Identity
	loginErr error
	pingErr  error
	refresh  terms.Acceptances

	registered []string
	loggedOut  int
}

func (f *fakeAuth) Register(ctx context.Context, username string, password []byte) error {
	f.registered = append(f.registered, username)
	return nil
}

func (f *fakeAuth) Login(ctx context.Context, username string, password []byte) (*session.Identity, error) {
	return f.loginID, f.loginErr
}

func (f *fakeAuth) Refresh(ctx context.Context, id *session.Identity) error {
	id.ReplaceAcceptances(f.refresh)
	return nil
}

func (f *fakeAuth) Logout(ctx context.Context)      { f.loggedOut++ }
func (f *fakeAuth) Ping(ctx context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(ctx context.Context) error { return nil }

type fakeCollections struct {
	items map[string]api.Collection
	order []string
}

func newFakeCollections(cs ...api.Collection) *fakeCollections {
	f := &fakeCollections{items: map[string]api.Collection{}}
	for _, c := range cs {
		f.items[c.ID] = c
		f.order = append(f.order, c.ID)
	}
	return f
}

func (f *fakeCollections) List(ctx context.Context) ([]api.Collection, error) {
	out := make([]api.Collection, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeCollections) Get(ctx context.Context, id string) (*api.Collection, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCollections) Create(ctx context.Context, name, description, termsText string) (*api.Collection, error) {
	c := api.Collection{ID: "new", Name: name, Description: description, Terms: termsText}
	f.items[c.ID] = c
	f.order = append(f.order, c.ID)
	return &c, nil
}

func (f *fakeCollections) UpdateTerms(ctx context.Context, id, termsText string) (*api.Collection, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	c.Terms = termsText
	f.items[id] = c
	return &c, nil
}

type fakeRemote struct {
	err   error
	calls int
}

func (f *fakeRemote) AcceptTerms(ctx context.Context, collectionID, hash string) error {
	f.calls++
	return f.err
}

type testApp struct {
	*App
	out    *bytes.Buffer
	auth   *fakeAuth
	coll   *fakeCollections
	remote *fakeRemote
}

func newTestApp(t *testing.T, input string, cs ...api.Collection) *testApp {
	t.Helper()

	out := &bytes.Buffer{}
	auth := &fakeAuth{}
	coll := newFakeCollections(cs...)
	remote := &fakeRemote{}

	cfg := &config.Config{}
	cfg.LoadDefaults()

	app := &App{
		config:      cfg,
		log:         logging.Nop(),
		auth:        auth,
		collections: coll,
		acceptance:  acceptance.NewService(remote, nil, acceptance.NewMemoryStore(), logging.Nop()),
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         out,
	}
	return &testApp{App: app, out: out, auth: auth, coll: coll, remote: remote}
}

func stubPassword(t *testing.T) {
	t.Helper()
	old := getPassword
	getPassword = func(io.Writer) ([]byte, error) {
		return []byte("secret"), nil
	}
	t.Cleanup(func() { getPassword = old })
}

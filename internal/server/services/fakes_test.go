package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophterms/internal/common"
	"github.com/dmitrijs2005/gophterms/internal/dbx"
	"github.com/dmitrijs2005/gophterms/internal/server/config"
	"github.com/dmitrijs2005/gophterms/internal/server/models"
	acceptancesrepo "github.com/dmitrijs2005/gophterms/internal/server/repositories/acceptances"
	collectionsrepo "github.com/dmitrijs2005/gophterms/internal/server/repositories/collections"
	refreshtokensrepo "github.com/dmitrijs2005/gophterms/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/gophterms/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return f.GetUserByLogin(ctx, id)
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error

	created []string
	deleted []string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

// fakeCollectionsRepo is an in-memory collections store.
type fakeCollectionsRepo struct {
	mu    sync.Mutex
	items map[string]models.Collection
	err   error
}

func newFakeCollections(cs ...models.Collection) *fakeCollectionsRepo {
	f := &fakeCollectionsRepo{items: map[string]models.Collection{}}
	for _, c := range cs {
		f.items[c.ID] = c
	}
	return f
}

func (f *fakeCollectionsRepo) Create(ctx context.Context, c *models.Collection) (*models.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if c.ID == "" {
		c.ID = "generated"
	}
	f.items[c.ID] = *c
	return c, nil
}

func (f *fakeCollectionsRepo) Get(ctx context.Context, id string) (*models.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (f *fakeCollectionsRepo) List(ctx context.Context) ([]models.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Collection, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCollectionsRepo) UpdateTerms(ctx context.Context, id string, termsText string) (*models.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.Terms = termsText
	f.items[id] = c
	return &c, nil
}

// fakeAcceptancesRepo keys rows by user id and collection id.
type fakeAcceptancesRepo struct {
	mu   sync.Mutex
	rows map[[2]string]models.Acceptance
	err  error
}

func newFakeAcceptances() *fakeAcceptancesRepo {
	return &fakeAcceptancesRepo{rows: map[[2]string]models.Acceptance{}}
}

func (f *fakeAcceptancesRepo) Upsert(ctx context.Context, a *models.Acceptance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows[[2]string{a.UserID, a.CollectionID}] = *a
	return nil
}

func (f *fakeAcceptancesRepo) ListByUser(ctx context.Context, userID string) ([]models.Acceptance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Acceptance
	for k, v := range f.rows {
		if k[0] == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	c *fakeCollectionsRepo
	a *fakeAcceptancesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Collections(db dbx.DBTX) collectionsrepo.Repository     { return m.c }
func (m *fakeRepoManager) Acceptances(db dbx.DBTX) acceptancesrepo.Repository     { return m.a }

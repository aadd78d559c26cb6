package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophterms/internal/api"
	"github.com/dmitrijs2005/gophterms/internal/client/client"
	"github.com/dmitrijs2005/gophterms/internal/client/session"
	"github.com/dmitrijs2005/gophterms/internal/cryptox"
	"github.com/dmitrijs2005/gophterms/internal/terms"
)

func TestRegister_SendsSaltAndVerifier(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc)

	require.NoError(t, svc.Register(context.Background(), "alice", []byte("pw")))

	assert.Equal(t, "alice", fc.LastRegisterUser)
	require.Len(t, fc.LastRegisterSalt, saltSize)

	want := cryptox.MakeVerifier(cryptox.DeriveMasterKey([]byte("pw"), fc.LastRegisterSalt))
	assert.Equal(t, want, fc.LastRegisterVerifier)
}

func TestRegister_PropagatesError(t *testing.T) {
	fc := &fakeClient{RegisterErr: client.ErrConflict}
	svc := NewAuthService(fc)

	err := svc.Register(context.Background(), "alice", []byte("pw"))
	require.ErrorIs(t, err, client.ErrConflict)
}

func TestLogin_BuildsIdentityFromProfile(t *testing.T) {
	salt := []byte("salty")
	fc := &fakeClient{
		GetSaltRet: salt,
		MeRet: &api.Profile{
			ID:       "u1",
			Username: "alice",
			Terms: terms.Profile{Collection: terms.Acceptances{
				"c1": {Hash: terms.Hash("v1")},
			}},
		},
	}
	svc := NewAuthService(fc)

	id, err := svc.Login(context.Background(), "alice", []byte("pw"))
	require.NoError(t, err)
	require.True(t, id.Authenticated())
	assert.Equal(t, "u1", id.ID)
	assert.Equal(t, "alice", id.UserName)

	rec, ok := id.Acceptance("c1")
	require.True(t, ok)
	assert.Equal(t, terms.Hash("v1"), rec.Hash)

	assert.Equal(t, "alice", fc.LastGetSaltUser)
	want := cryptox.MakeVerifier(cryptox.DeriveMasterKey([]byte("pw"), salt))
	assert.Equal(t, want, fc.LastLoginVerifier)
}

func TestLogin_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name       string
		fc         *fakeClient
		want       error
		wantLogout int
	}{
		{"salt", &fakeClient{GetSaltErr: boom}, boom, 0},
		{"login", &fakeClient{LoginErr: client.ErrUnauthorized}, client.ErrUnauthorized, 0},
		{"profile", &fakeClient{MeErr: client.ErrUnavailable}, client.ErrUnavailable, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.fc)
			id, err := svc.Login(context.Background(), "alice", []byte("pw"))
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, id)
			assert.Equal(t, tt.wantLogout, tt.fc.LoggedOut)
		})
	}
}

func TestLogin_NilAcceptancesBecomeEmpty(t *testing.T) {
	fc := &fakeClient{MeRet: &api.Profile{ID: "u1", Username: "alice"}}
	svc := NewAuthService(fc)

	id, err := svc.Login(context.Background(), "alice", []byte("pw"))
	require.NoError(t, err)

	// must not panic on a nil map
	id.SetAcceptance("c1", terms.Record{Hash: "h"})
	assert.Len(t, id.Acceptances(), 1)
}

func TestRefresh_ReplacesAcceptances(t *testing.T) {
	fc := &fakeClient{MeRet: &api.Profile{
		ID: "u1",
		Terms: terms.Profile{Collection: terms.Acceptances{
			"c2": {Hash: "h2"},
		}},
	}}
	svc := NewAuthService(fc)

	id := session.NewIdentity("u1", "alice", terms.Acceptances{"c1": {Hash: "h1"}})
	var changes int
	id.Subscribe(func(session.Change) { changes++ })

	require.NoError(t, svc.Refresh(context.Background(), id))

	_, ok := id.Acceptance("c1")
	assert.False(t, ok)
	rec, ok := id.Acceptance("c2")
	require.True(t, ok)
	assert.Equal(t, "h2", rec.Hash)
	assert.Equal(t, 1, changes)
}

func TestRefresh_AnonymousIsUnauthorized(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc)

	require.ErrorIs(t, svc.Refresh(context.Background(), nil), client.ErrUnauthorized)
	assert.Zero(t, fc.MeCalls)
}

func TestRefresh_ErrorKeepsIdentity(t *testing.T) {
	fc := &fakeClient{MeErr: client.ErrUnavailable}
	svc := NewAuthService(fc)

	id := session.NewIdentity("u1", "alice", terms.Acceptances{"c1": {Hash: "h1"}})
	require.ErrorIs(t, svc.Refresh(context.Background(), id), client.ErrUnavailable)

	_, ok := id.Acceptance("c1")
	assert.True(t, ok)
}

func TestLogoutPingClose(t *testing.T) {
	boom := errors.New("closed")
	fc := &fakeClient{PingErr: client.ErrUnavailable, CloseErr: boom}
	svc := NewAuthService(fc)
	ctx := context.Background()

	svc.Logout(ctx)
	assert.Equal(t, 1, fc.LoggedOut)
	assert.ErrorIs(t, svc.Ping(ctx), client.ErrUnavailable)
	assert.ErrorIs(t, svc.Close(ctx), boom)
}

// Package services contains application services for the gophterms client.
// This file defines the authentication service: register, login (which
// builds the session identity), profile refresh, logout and liveness probe.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophterms/internal/client/client"
	"github.com/dmitrijs2005/gophterms/internal/client/session"
	"github.com/dmitrijs2005/gophterms/internal/common"
	"github.com/dmitrijs2005/gophterms/internal/cryptox"
	"github.com/dmitrijs2005/gophterms/internal/terms"
)

const saltSize = 32

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new user on the server.
//   - Login: authenticate and return the identity with its acceptances.
//   - Refresh: re-pull the acceptances of an identity from the server.
//   - Logout: forget the tokens; the caller drops the identity.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (*session.Identity, error)
	Refresh(ctx context.Context, id *session.Identity) error
	Logout(ctx context.Context)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client client.Client) AuthService {
	return &authService{client: client}
}

// Register creates a new account on the server. It generates a random salt,
// derives a master key from the password, computes a verifier, and sends
// salt and verifier to the server. The password never leaves the process.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(saltSize)
	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	verifier := cryptox.MakeVerifier(key)

	if err := a.client.Register(ctx, username, salt, verifier); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Login authenticates against the server and loads the user profile. The
// returned identity carries the acceptance records stored on the server.
func (a *authService) Login(ctx context.Context, userName string, password []byte) (*session.Identity, error) {
	salt, err := a.client.GetSalt(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("get salt error: %w", err)
	}

	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	verifier := cryptox.MakeVerifier(key)

	if err := a.client.Login(ctx, userName, verifier); err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	profile, err := a.client.Me(ctx)
	if err != nil {
		a.client.Logout()
		return nil, fmt.Errorf("load profile error: %w", err)
	}

	return session.NewIdentity(profile.ID, profile.Username, acceptancesOf(profile.Terms)), nil
}

// Refresh replaces the acceptances of id with the server's current view.
func (a *authService) Refresh(ctx context.Context, id *session.Identity) error {
	if !id.Authenticated() {
		return client.ErrUnauthorized
	}

	profile, err := a.client.Me(ctx)
	if err != nil {
		return fmt.Errorf("load profile error: %w", err)
	}

	id.ReplaceAcceptances(acceptancesOf(profile.Terms))
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.client.Logout()
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func acceptancesOf(p terms.Profile) terms.Acceptances {
	if p.Collection == nil {
		return terms.Acceptances{}
	}
	return p.Collection
}

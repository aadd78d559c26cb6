package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophterms/internal/client/client"
	"github.com/dmitrijs2005/gophterms/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in")

// Register prompts for a user name and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrConflict) {
			return fmt.Errorf("user %s already exists", userName)
		}
		return err
	}

	fmt.Fprintln(a.out, "Success! You can now login.")
	return nil
}

// Login prompts for credentials and, on success, makes the returned identity
// the current principal. Acceptances made while anonymous stay in the local
// store and are not uploaded.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.auth.Login(ctx, userName, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "user", userName, "error", err)
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}

	a.setIdentity(id)
	a.setMode(ModeOnline)
	a.log.Info(ctx, "login successful", "user", userName)
	fmt.Fprintf(a.out, "Logged in as %s\n", id.UserName)
	return nil
}

// Logout drops the tokens and the identity; the user becomes anonymous.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	a.auth.Logout(ctx)
	a.setIdentity(nil)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id := a.currentIdentity()
	if id == nil {
		fmt.Fprintln(a.out, "anonymous")
		return nil
	}
	fmt.Fprintf(a.out, "%s (id %s), %d accepted terms on record\n", id.UserName, id.ID, len(id.Acceptances()))
	return nil
}

// Refresh reloads the acceptances of the logged-in user from the server.
func (a *App) Refresh(ctx context.Context) error {
	id := a.currentIdentity()
	if id == nil {
		return errNotLoggedIn
	}
	return a.auth.Refresh(ctx, id)
}

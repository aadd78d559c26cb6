package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophterms/internal/client/client"
	"github.com/dmitrijs2005/gophterms/internal/terms"
)

var getMultiline = GetMultiline

// Collections lists all collections and flags the ones whose terms the
// current principal still has to accept.
func (a *App) Collections(ctx context.Context) error {
	list, err := a.collections.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No collections")
		return nil
	}

	id := a.currentIdentity()
	for _, c := range list {
		state := "no terms"
		if terms.HasTerms(c.Terms) {
			state = "accepted"
			if a.acceptance.NeedsAcceptance(ctx, id, c.ID, c.Terms) {
				state = "needs acceptance"
			}
		}
		fmt.Fprintf(a.out, "%s  %-30s [%s]\n", c.ID, c.Name, state)
	}
	return nil
}

// Terms prints the terms of a collection and whether they are accepted.
func (a *App) Terms(ctx context.Context, collectionID string) error {
	c, err := a.collections.Get(ctx, collectionID)
	if err != nil {
		return err
	}

	if !terms.HasTerms(c.Terms) {
		fmt.Fprintf(a.out, "Collection %s has no terms of use\n", c.Name)
		return nil
	}

	accepted := a.acceptance.HasAccepted(ctx, a.currentIdentity(), c.ID, c.Terms)

	fmt.Fprintf(a.out, "Terms of use for %s (version %s):\n\n%s\n\n", c.Name, terms.Hash(c.Terms)[:12], c.Terms)
	if accepted {
		fmt.Fprintln(a.out, "You have accepted these terms.")
	} else {
		fmt.Fprintf(a.out, "Not accepted yet. Type 'accept %s' to accept.\n", c.ID)
	}
	return nil
}

// Accept accepts the terms currently published for a collection.
func (a *App) Accept(ctx context.Context, collectionID string) error {
	c, err := a.collections.Get(ctx, collectionID)
	if err != nil {
		return err
	}

	if !terms.HasTerms(c.Terms) {
		fmt.Fprintf(a.out, "Collection %s has no terms to accept\n", c.Name)
		return nil
	}

	if err := a.acceptance.Accept(ctx, a.currentIdentity(), c.ID, c.Terms); err != nil {
		if errors.Is(err, client.ErrTermsMismatch) {
			return fmt.Errorf("the terms of %s changed meanwhile, review them with 'terms %s'", c.Name, c.ID)
		}
		return err
	}

	fmt.Fprintf(a.out, "Accepted terms of %s\n", c.Name)
	return nil
}

// Create prompts for a new collection and its terms.
func (a *App) Create(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	name, err := getSimpleText(a.reader, "Collection name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	text, err := getMultiline(a.reader, "Terms of use (may be empty)", a.out)
	if err != nil {
		return err
	}

	c, err := a.collections.Create(ctx, name, description, text)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created collection %s\n", c.ID)
	return nil
}

// EditTerms replaces the terms of a collection the user created. Every
// previous acceptance stops matching.
func (a *App) EditTerms(ctx context.Context, collectionID string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	text, err := getMultiline(a.reader, "New terms of use", a.out)
	if err != nil {
		return err
	}

	c, err := a.collections.UpdateTerms(ctx, collectionID, text)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Terms of %s updated\n", c.Name)
	return nil
}

// Package session holds the in-memory principal of the running client.
//
// A nil *Identity is the anonymous principal. A non-nil Identity is an
// authenticated user whose terms acceptances were pulled from the server at
// login and are kept in memory for the rest of the session.
package session

import (
	"sync"

	"github.com/dmitrijs2005/gophterms/internal/terms"
)

// AttributeTerms is the attribute name published when acceptances change.
const AttributeTerms = "terms"

// Change describes one mutation of an Identity.
//
// CollectionID is empty when the whole acceptance bag was replaced.
type Change struct {
	Attribute    string
	CollectionID string
}

// Identity is an authenticated principal.
type Identity struct {
	ID       string
	UserName string

	mu          sync.RWMutex
	acceptances terms.Acceptances

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Change)
}

// NewIdentity builds an identity seeded with acceptances. The map is copied.
func NewIdentity(id, userName string, acceptances terms.Acceptances) *Identity {
	return &Identity{
		ID:          id,
		UserName:    userName,
		acceptances: acceptances.Clone(),
		subs:        make(map[int]func(Change)),
	}
}

// Authenticated reports whether i is an authenticated principal.
func (i *Identity) Authenticated() bool {
	return i != nil
}

// Acceptance returns the record stored for collectionID.
func (i *Identity) Acceptance(collectionID string) (terms.Record, bool) {
	if i == nil {
		return terms.Record{}, false
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	rec, ok := i.acceptances[collectionID]
	return rec, ok
}

// Acceptances returns a snapshot of every stored record.
func (i *Identity) Acceptances() terms.Acceptances {
	if i == nil {
		return terms.Acceptances{}
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.acceptances.Clone()
}

// SetAcceptance overwrites the record for collectionID and notifies subscribers.
func (i *Identity) SetAcceptance(collectionID string, rec terms.Record) {
	i.mu.Lock()
	i.acceptances[collectionID] = rec
	i.mu.Unlock()

	i.publish(Change{Attribute: AttributeTerms, CollectionID: collectionID})
}

// ReplaceAcceptances swaps the whole bag, e.g. after a profile refresh, and
// notifies subscribers.
func (i *Identity) ReplaceAcceptances(acceptances terms.Acceptances) {
	i.mu.Lock()
	i.acceptances = acceptances.Clone()
	i.mu.Unlock()

	i.publish(Change{Attribute: AttributeTerms})
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription and is safe to call more than once.
func (i *Identity) Subscribe(fn func(Change)) (cancel func()) {
	i.subMu.Lock()
	defer i.subMu.Unlock()

	id := i.nextID
	i.nextID++
	i.subs[id] = fn

	return func() {
		i.subMu.Lock()
		defer i.subMu.Unlock()
		delete(i.subs, id)
	}
}

// publish calls subscribers outside of any lock so they may read the identity.
func (i *Identity) publish(c Change) {
	i.subMu.Lock()
	fns := make([]func(Change), 0, len(i.subs))
	for _, fn := range i.subs {
		fns = append(fns, fn)
	}
	i.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

package acceptance

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophterms/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/gophterms/internal/client/session"
	"github.com/dmitrijs2005/gophterms/internal/logging"
	"github.com/dmitrijs2005/gophterms/internal/terms"
)

// Remote performs the authenticated acceptance write.
type Remote interface {
	AcceptTerms(ctx context.Context, collectionID, hash string) error
}

// Service records terms acceptance on the server and remembers it locally.
type Service struct {
	remote   Remote
	store    KVStore
	fallback *MemoryStore
	log      logging.Logger
}

// NewService builds a Service. A nil fallback gets a fresh MemoryStore and a
// nil log discards output.
func NewService(remote Remote, store KVStore, fallback *MemoryStore, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	if fallback == nil {
		fallback = NewMemoryStore()
	}
	return &Service{
		remote:   remote,
		store:    store,
		fallback: fallback,
		log:      log.With("module", "acceptance"),
	}
}

// HasAccepted reports whether principal accepted the terms in blob for
// collectionID. A nil principal is anonymous. It never fails: storage errors
// fall back to the MemoryStore and a miss means "not accepted".
func (s *Service) HasAccepted(ctx context.Context, principal *session.Identity, collectionID, blob string) bool {
	h := terms.Hash(blob)

	if principal.Authenticated() {
		rec, ok := principal.Acceptance(collectionID)
		return ok && rec.Matches(h)
	}

	return s.readLocal(ctx, collectionID) == h
}

// NeedsAcceptance reports whether the collection has terms the principal has
// not accepted yet.
func (s *Service) NeedsAcceptance(ctx context.Context, principal *session.Identity, collectionID, blob string) bool {
	return terms.HasTerms(blob) && !s.HasAccepted(ctx, principal, collectionID, blob)
}

// Accept records acceptance of blob for collectionID.
//
// For an authenticated principal the server is written first and the
// identity is updated only once it confirms; a remote failure is returned
// and nothing changes locally. For the anonymous principal the hash goes to
// local storage, or the MemoryStore if that fails, and Accept never fails.
func (s *Service) Accept(ctx context.Context, principal *session.Identity, collectionID, blob string) error {
	h := terms.Hash(blob)

	if principal.Authenticated() {
		if err := s.remote.AcceptTerms(ctx, collectionID, h); err != nil {
			s.log.Warn(ctx, "remote accept failed", "collection", collectionID, "error", err)
			return fmt.Errorf("accept terms for collection %s: %w", collectionID, err)
		}
		principal.SetAcceptance(collectionID, terms.Record{Hash: h})
		s.log.Info(ctx, "terms accepted", "collection", collectionID, "principal", principal.UserName)
		return nil
	}

	s.writeLocal(ctx, collectionID, h)
	s.log.Info(ctx, "terms accepted", "collection", collectionID, "principal", "anonymous")
	return nil
}

func (s *Service) readLocal(ctx context.Context, collectionID string) string {
	key := terms.StorageKey(collectionID)

	if s.store != nil {
		v, err := s.store.Get(ctx, key)
		if err == nil {
			return string(v)
		}
		s.logDegraded(ctx, "read", key, err)
	}

	v, _ := s.fallback.Get(ctx, key)
	return string(v)
}

func (s *Service) writeLocal(ctx context.Context, collectionID, hash string) {
	key := terms.StorageKey(collectionID)

	if s.store != nil {
		err := s.store.Set(ctx, key, []byte(hash))
		if err == nil {
			return
		}
		s.logDegraded(ctx, "write", key, err)
	}

	_ = s.fallback.Set(ctx, key, []byte(hash))
}

func (s *Service) logDegraded(ctx context.Context, op, key string, err error) {
	s.log.Warn(ctx, "local storage failed, using session fallback",
		"op", op,
		"key", key,
		"reason", localstore.Reason(err),
		"error", err,
	)
}

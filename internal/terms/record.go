package terms

import "time"

// StorageKeyPrefix prefixes every per-collection key in the local store.
const StorageKeyPrefix = "terms.collection."

// Record is the acceptance state of one collection for one principal.
//
// Accepted is stamped by the server and is only kept for audit; clients
// never set it and never look at it when deciding whether terms are accepted.
type Record struct {
	Hash     string     `json:"hash"`
	Accepted *time.Time `json:"accepted,omitempty"`
}

// Matches reports whether the record was made for the given terms hash.
func (r Record) Matches(hash string) bool {
	return r.Hash != "" && r.Hash == hash
}

// Acceptances maps a collection id to its acceptance record.
type Acceptances map[string]Record

// Clone returns an independent copy of a.
func (a Acceptances) Clone() Acceptances {
	out := make(Acceptances, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Profile is the terms section of a user profile as exchanged on the wire:
//
//	{"collection": {"<collectionId>": {"hash": "...", "accepted": "..."}}}
type Profile struct {
	Collection Acceptances `json:"collection"`
}

// StorageKey returns the local storage key for a collection.
func StorageKey(collectionID string) string {
	return StorageKeyPrefix + collectionID
}

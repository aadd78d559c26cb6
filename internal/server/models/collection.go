package models

import "time"

// Collection is a named set of data whose use may be bound by terms.
// An empty Terms means the collection has no terms.
type Collection struct {
	ID          string
	Name        string
	Description string
	Terms       string
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Acceptance records that a user accepted the terms with the given hash.
// Rows are overwritten on re-acceptance and never deleted when terms change.
type Acceptance struct {
	UserID       string
	CollectionID string
	TermsHash    string
	AcceptedAt   time.Time
}

// Package api holds the JSON bodies exchanged between the gophterms server
// and its clients. Byte slices travel as standard base64.
package api

import (
	"time"

	"github.com/dmitrijs2005/gophterms/internal/terms"
)

const StatusOK = "OK"

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type SaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Verifier []byte `json:"verifier"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Profile is the authenticated user as returned by GET /user/me.
type Profile struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Terms    terms.Profile `json:"terms"`
}

type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Terms       string    `json:"terms,omitempty"`
	TermsHash   string    `json:"termsHash,omitempty"`
	CreatorID   string    `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Terms       string `json:"terms"`
}

type UpdateTermsRequest struct {
	Terms string `json:"terms"`
}

type AcceptTermsRequest struct {
	TermsHash string `json:"termsHash"`
}

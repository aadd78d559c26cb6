// Package common contains shared constants and sentinel errors used across
// gophterms components.
package common

// AuthorizationHeader carries "Bearer <access token>" on HTTP requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix precedes the access token in AuthorizationHeader.
const BearerPrefix = "Bearer "

// APIPrefix is the path prefix of every server endpoint.
const APIPrefix = "/api/v1"

package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrTermsMismatch = errors.New("terms do not match the current version")
	ErrBadRequest    = errors.New("bad request")
)

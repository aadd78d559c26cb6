// Package localstore is the client's persistent key/value storage, kept in
// the local SQLite database in the local_storage table.
//
// Every failure is classified as either ErrQuotaExceeded (the database is
// full) or ErrUnavailable (anything else, e.g. a closed, locked or
// read-only database) so callers can log why they degraded.
package localstore

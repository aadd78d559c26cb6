package localstore

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrQuotaExceeded = errors.New("quota exceeded")
	ErrUnavailable   = errors.New("storage unavailable")
)

// Classify maps a storage error to ErrQuotaExceeded or ErrUnavailable.
// It returns nil for a nil error.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return ErrQuotaExceeded
	}

	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) && sqlErr.Code()&0xff == sqlite3.SQLITE_FULL {
		return ErrQuotaExceeded
	}
	return ErrUnavailable
}

// Reason returns a short label for logs: "quota_exceeded" or "unavailable".
func Reason(err error) string {
	if errors.Is(Classify(err), ErrQuotaExceeded) {
		return "quota_exceeded"
	}
	return "unavailable"
}

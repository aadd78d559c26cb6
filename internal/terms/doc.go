// Package terms holds the pieces of the terms-of-use model shared by the
// client and the server: the content hash used as a version fingerprint,
// the acceptance record, and the local storage key layout.
package terms

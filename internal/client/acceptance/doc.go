// Package acceptance tracks whether the current principal has accepted the
// current terms of use of a collection.
//
// Authenticated principals keep their acceptances in the in-memory identity
// loaded at login and accept through the server. Anonymous principals keep
// theirs in local persistent storage, degrading to a per-process MemoryStore
// when that storage fails. Storage failures never reach the caller.
package acceptance

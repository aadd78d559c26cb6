// Package cli provides the interactive gophterms command-line client.
//
// It wires configuration, the local SQLite store, API services, the terms
// acceptance tracker and an interactive REPL. Typical flow: start a
// background connectivity watcher, then execute user commands. Without a
// login the user is anonymous and acceptances are kept locally.
//
// Key features:
//   - Register / Login / Logout / WhoAmI
//   - List collections and show their terms with the acceptance state
//   - Accept terms (server-side when logged in, local otherwise)
//   - Create collections and edit their terms
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

// Package screen holds the state controllers behind every resource screen of
// the admin client.
//
// A Screen keeps four pieces of state consistent around asynchronous API
// calls: the list snapshot, the modal draft, the delete confirmation and the
// URL mirrored into the app history. Network calls never run inline. Every
// operation that talks to the API returns a tea.Cmd, and the result comes
// back through Update as a message. This keeps all state changes on the
// caller's event loop, so a Screen needs no locking.
//
// The snapshot is never patched locally. Every successful create, update or
// delete is followed by exactly one list refresh, and the refreshed list
// replaces the old one wholesale.
package screen

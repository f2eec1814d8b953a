// Package workspace keeps client-side state synchronized with the Verto API.
//
// This file wires the pieces together: one Workspace per authenticated
// session, owning the session, the account operations and the three caches.
package workspace

import (
	verto "github.com/muhammadjan5/verto-ux/sdk"
)

// Workspace bundles everything bound to one authenticated session. Switching
// identities must go through Reset; caches are never reused across sessions.
type Workspace struct {
	Client    *verto.Client
	Session   *Session
	Account   *Account
	Store     *Store
	Directory *Directory
	Registry  *Registry
}

// New builds a Workspace: a session restored from storage, an SDK client
// using that session as its token source, and the caches over the client's
// services.
func New(storage SessionStorage, opts ...verto.ClientOption) *Workspace {
	session := NewSession(storage)
	client := verto.NewClient(session, opts...)

	return &Workspace{
		Client:    client,
		Session:   session,
		Account:   NewAccount(client.Auth, client.Users, session),
		Store:     NewStore(client.Releases, client.Projects),
		Directory: NewDirectory(client.Organizations),
		Registry:  NewRegistry(client.TransactionEvents),
	}
}

// Reset signs out and empties every cache.
func (w *Workspace) Reset() {
	w.Session.Logout()
	w.Store.Clear()
	w.Directory.Clear()
	w.Registry.Clear()
}

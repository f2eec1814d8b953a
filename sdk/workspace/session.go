// Package workspace keeps client-side state synchronized with the Verto API.
//
// This file implements the Session, which owns the bearer credential and the
// signed-in user profile, and the Account, which drives the auth and profile
// operations that establish or refresh that identity. The Session is the
// token source injected into the SDK client; persisting it through a
// SessionStorage is optional and is the only client-side persistence in the
// system.
package workspace

import (
	"context"
	"sync"

	"github.com/muhammadjan5/verto-ux/sdk/models"
)

// StoredSession is the persisted shape of a session: the token plus the
// cached user profile.
type StoredSession struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// SessionStorage persists sessions across runs. Load returns nil with no
// error when nothing is stored.
type SessionStorage interface {
	Load() (*StoredSession, error)
	Save(StoredSession) error
	Clear() error
}

// AuthAPI is the session-establishing surface. Implemented by
// services.AuthService.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Signup(ctx context.Context, payload models.SignupPayload) (*models.AuthResponse, error)
	InviteDetails(ctx context.Context, token string) (*models.InviteDetails, error)
	AcceptInvite(ctx context.Context, token, password string) (*models.AuthResponse, error)
}

// UserAPI is the profile surface. Implemented by services.UserService.
type UserAPI interface {
	Me(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, payload models.UpdateProfilePayload) (*models.UserProfile, error)
	UpdatePassword(ctx context.Context, payload models.UpdatePasswordPayload) (*models.UserProfile, error)
}

// Session holds the current credential and user. Implements the SDK's
// TokenSource. Safe for concurrent use.
type Session struct {
	storage SessionStorage

	mu    sync.Mutex
	token string
	user  *models.UserProfile
}

// NewSession creates a Session, restoring any persisted identity from
// storage. Storage may be nil for a purely in-memory session.
func NewSession(storage SessionStorage) *Session {
	s := &Session{storage: storage}

	if storage != nil {
		if stored, err := storage.Load(); err == nil && stored != nil && stored.Token != "" {
			s.token = stored.Token
			user := stored.User
			s.user = &user
		}
	}

	return s
}

// Token returns the current bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the signed-in profile, or nil when signed out.
func (s *Session) User() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// SignedIn reports whether a credential is present.
func (s *Session) SignedIn() bool {
	return s.Token() != ""
}

// SetIdentity replaces the current identity and persists it.
func (s *Session) SetIdentity(token string, user models.UserProfile) {
	s.mu.Lock()
	s.token = token
	s.user = &user
	storage := s.storage
	s.mu.Unlock()

	if storage != nil {
		// Persistence failures are not fatal; the in-memory session stands.
		_ = storage.Save(StoredSession{Token: token, User: user})
	}
}

// Logout drops the identity and clears the persisted session.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	storage := s.storage
	s.mu.Unlock()

	if storage != nil {
		_ = storage.Clear()
	}
}

// Account drives the operations that establish or refresh the session
// identity.
type Account struct {
	auth    AuthAPI
	users   UserAPI
	session *Session
}

// NewAccount creates an Account bound to the given session.
func NewAccount(auth AuthAPI, users UserAPI, session *Session) *Account {
	return &Account{auth: auth, users: users, session: session}
}

// Login authenticates with email/password and installs the returned
// identity.
func (a *Account) Login(ctx context.Context, email, password string) error {
	resp, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.session.SetIdentity(resp.Token, resp.User)
	return nil
}

// Signup creates an account and installs the returned identity.
func (a *Account) Signup(ctx context.Context, payload models.SignupPayload) error {
	resp, err := a.auth.Signup(ctx, payload)
	if err != nil {
		return err
	}
	a.session.SetIdentity(resp.Token, resp.User)
	return nil
}

// InviteDetails resolves an invite token.
func (a *Account) InviteDetails(ctx context.Context, token string) (*models.InviteDetails, error) {
	return a.auth.InviteDetails(ctx, token)
}

// AcceptInvite redeems an invite token and installs the returned identity.
func (a *Account) AcceptInvite(ctx context.Context, token, password string) error {
	resp, err := a.auth.AcceptInvite(ctx, token, password)
	if err != nil {
		return err
	}
	a.session.SetIdentity(resp.Token, resp.User)
	return nil
}

// RefreshProfile refetches the signed-in profile and refreshes the persisted
// session.
func (a *Account) RefreshProfile(ctx context.Context) (*models.UserProfile, error) {
	profile, err := a.users.Me(ctx)
	if err != nil {
		return nil, err
	}
	a.session.SetIdentity(a.session.Token(), *profile)
	return profile, nil
}

// UpdateProfile patches profile fields and refreshes the persisted session.
func (a *Account) UpdateProfile(ctx context.Context, payload models.UpdateProfilePayload) (*models.UserProfile, error) {
	profile, err := a.users.UpdateProfile(ctx, payload)
	if err != nil {
		return nil, err
	}
	a.session.SetIdentity(a.session.Token(), *profile)
	return profile, nil
}

// UpdatePassword changes the password and refreshes the persisted session.
func (a *Account) UpdatePassword(ctx context.Context, payload models.UpdatePasswordPayload) (*models.UserProfile, error) {
	profile, err := a.users.UpdatePassword(ctx, payload)
	if err != nil {
		return nil, err
	}
	a.session.SetIdentity(a.session.Token(), *profile)
	return profile, nil
}

// Package session guards the console's stateful surfaces: the login
// gate, the single edit session, and the in-process attachment cache.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"lideranca/internal/adapters/storage/account"
)

// Domain errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrLoginInFlight      = errors.New("login already in progress")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// DataMirrors is the slice of the mirror set the gate controls.
type DataMirrors interface {
	Start(ctx context.Context) error
	Stop()
	Reset()
}

// Gate owns the authenticated session and the lifecycle of the data
// mirrors: they run only while someone is logged in.
// INVARIANT: after Logout returns, every mirror is empty
type Gate struct {
	accounts account.Store
	mirrors  DataMirrors

	mu        sync.Mutex
	identity  string
	loggingIn bool
}

// NewGate creates a logged-out gate.
func NewGate(accounts account.Store, mirrors DataMirrors) *Gate {
	return &Gate{accounts: accounts, mirrors: mirrors}
}

// Login authenticates and starts the mirrors.
// PRE: no login is in flight
// POST: on success, Identity() returns the email and mirrors are live
//
// Credential failures collapse to ErrInvalidCredentials so callers
// cannot distinguish an unknown email from a wrong password.
//
// Logging in while a session is already live (a second browser, or a
// re-login after the HTTP cookie expired) keeps the running mirrors
// and just refreshes the identity.
func (g *Gate) Login(ctx context.Context, email, password string) error {
	g.mu.Lock()
	if g.loggingIn {
		g.mu.Unlock()
		return ErrLoginInFlight
	}
	g.loggingIn = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.loggingIn = false
		g.mu.Unlock()
	}()

	acct, err := g.accounts.GetByEmail(ctx, email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email)
		return ErrInvalidCredentials
	}
	if err := acct.CheckPassword(password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email)
		return ErrInvalidCredentials
	}

	g.mu.Lock()
	mirrorsLive := g.identity != ""
	g.mu.Unlock()

	if !mirrorsLive {
		if err := g.mirrors.Start(ctx); err != nil {
			return err
		}
	}

	g.mu.Lock()
	g.identity = acct.Email
	g.mu.Unlock()

	slog.Info("auth_event", "event", "login", "email", acct.Email)
	return nil
}

// Logout ends the session. The mirrors are stopped and emptied before
// this returns; there is no window where a logged-out observer can
// still read data.
func (g *Gate) Logout() {
	g.mu.Lock()
	email := g.identity
	g.identity = ""
	g.mu.Unlock()

	g.mirrors.Stop()
	g.mirrors.Reset()

	if email != "" {
		slog.Info("auth_event", "event", "logout", "email", email)
	}
}

// Identity returns the logged-in email, or "".
func (g *Gate) Identity() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.identity
}

// Authenticated reports whether a session is active.
func (g *Gate) Authenticated() bool {
	return g.Identity() != ""
}

package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	domain "lideranca/internal/domain/account"
)

type fakeAccounts struct {
	accounts map[string]domain.Account
	entered  chan struct{} // signals a lookup has begun
	block    chan struct{} // when non-nil, GetByEmail blocks until closed
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}
	if f.block != nil {
		<-f.block
	}
	acct, ok := f.accounts[email]
	if !ok {
		return domain.Account{}, errors.New("account not found")
	}
	return acct, nil
}

func (f *fakeAccounts) Save(ctx context.Context, value domain.Account) error { return nil }
func (f *fakeAccounts) Count(ctx context.Context) (int, error)               { return len(f.accounts), nil }

type fakeMirrors struct {
	mu      sync.Mutex
	started bool
	stopped bool
	reset   bool
	order   []string
}

func (f *fakeMirrors) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
	f.order = append(f.order, "start")
	return nil
}

func (f *fakeMirrors) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	f.order = append(f.order, "stop")
}

func (f *fakeMirrors) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset = true
	f.order = append(f.order, "reset")
}

func testAccount(t *testing.T, email, password string) domain.Account {
	t.Helper()
	acct := domain.Account{ID: "a1", Email: email}
	if err := acct.SetPassword(password); err != nil {
		t.Fatalf("set password: %v", err)
	}
	return acct
}

func TestLoginSuccess(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]domain.Account{
		"pr@igreja.com": testAccount(t, "pr@igreja.com", "senha-muito-longa"),
	}}
	mirrors := &fakeMirrors{}
	gate := NewGate(accounts, mirrors)

	if err := gate.Login(context.Background(), "pr@igreja.com", "senha-muito-longa"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if gate.Identity() != "pr@igreja.com" {
		t.Errorf("identity = %q", gate.Identity())
	}
	if !mirrors.started {
		t.Error("mirrors not started on login")
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]domain.Account{
		"pr@igreja.com": testAccount(t, "pr@igreja.com", "senha-muito-longa"),
	}}
	gate := NewGate(accounts, &fakeMirrors{})

	// Unknown email and wrong password look identical to the caller.
	for _, tc := range []struct{ email, password string }{
		{"desconhecido@igreja.com", "senha-muito-longa"},
		{"pr@igreja.com", "senha-errada-longa"},
	} {
		err := gate.Login(context.Background(), tc.email, tc.password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("login(%s) = %v, want ErrInvalidCredentials", tc.email, err)
		}
	}
	if gate.Authenticated() {
		t.Error("gate authenticated after failed logins")
	}
}

func TestReloginKeepsRunningMirrors(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]domain.Account{
		"pr@igreja.com": testAccount(t, "pr@igreja.com", "senha-muito-longa"),
	}}
	mirrors := &fakeMirrors{}
	gate := NewGate(accounts, mirrors)

	if err := gate.Login(context.Background(), "pr@igreja.com", "senha-muito-longa"); err != nil {
		t.Fatalf("first login: %v", err)
	}
	// A cookie expiry or a second browser brings the same user back to
	// the login form while the gate is still authenticated.
	if err := gate.Login(context.Background(), "pr@igreja.com", "senha-muito-longa"); err != nil {
		t.Fatalf("re-login with valid credentials: %v", err)
	}
	if gate.Identity() != "pr@igreja.com" {
		t.Errorf("identity = %q", gate.Identity())
	}
	if got := mirrors.order; len(got) != 1 || got[0] != "start" {
		t.Errorf("mirror lifecycle = %v, want a single start", got)
	}
}

func TestLoginInFlightGuard(t *testing.T) {
	block := make(chan struct{})
	accounts := &fakeAccounts{
		accounts: map[string]domain.Account{
			"pr@igreja.com": testAccount(t, "pr@igreja.com", "senha-muito-longa"),
		},
		entered: make(chan struct{}, 1),
		block:   block,
	}
	gate := NewGate(accounts, &fakeMirrors{})

	done := make(chan error, 1)
	go func() {
		done <- gate.Login(context.Background(), "pr@igreja.com", "senha-muito-longa")
	}()

	// Wait until the first login is inside the account lookup, then
	// the second attempt must bounce off the guard.
	<-accounts.entered
	second := gate.Login(context.Background(), "pr@igreja.com", "senha-muito-longa")
	if !errors.Is(second, ErrLoginInFlight) {
		t.Errorf("second login = %v, want ErrLoginInFlight", second)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first login: %v", err)
	}
}

func TestLogoutStopsAndClearsMirrors(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]domain.Account{
		"pr@igreja.com": testAccount(t, "pr@igreja.com", "senha-muito-longa"),
	}}
	mirrors := &fakeMirrors{}
	gate := NewGate(accounts, mirrors)

	if err := gate.Login(context.Background(), "pr@igreja.com", "senha-muito-longa"); err != nil {
		t.Fatalf("login: %v", err)
	}
	gate.Logout()

	if gate.Authenticated() {
		t.Error("still authenticated after logout")
	}
	if !mirrors.stopped || !mirrors.reset {
		t.Error("mirrors not stopped and reset on logout")
	}
	// Reset happens after Stop, before Logout returns.
	if len(mirrors.order) != 3 || mirrors.order[1] != "stop" || mirrors.order[2] != "reset" {
		t.Errorf("lifecycle order = %v", mirrors.order)
	}
}

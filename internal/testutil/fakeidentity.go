package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"planify/internal/service"
)

type account struct {
	uid         string
	email       string
	password    string
	displayName string
}

// FakeIdentity is an in-memory service.IdentityProvider for testing.
type FakeIdentity struct {
	mu       sync.Mutex
	accounts map[string]*account // email -> account
	tokens   map[string]string   // id token -> email
	calls    []string

	// Error injection for testing
	SignInErr         error
	SignUpErr         error
	GoogleErr         error
	ResetErr          error
	ChangePasswordErr error
	DeleteErr         error
	RefreshErr        error
}

// NewFakeIdentity creates an empty FakeIdentity.
func NewFakeIdentity() *FakeIdentity {
	return &FakeIdentity{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
	}
}

// AddAccount registers an email/password account and returns its uid.
func (f *FakeIdentity) AddAccount(email, password, displayName string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid := uuid.NewString()
	f.accounts[email] = &account{uid: uid, email: email, password: password, displayName: displayName}
	return uid
}

// Password returns the current password of email.
func (f *FakeIdentity) Password(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[email]; ok {
		return a.password
	}
	return ""
}

// HasAccount reports whether email is registered.
func (f *FakeIdentity) HasAccount(email string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.accounts[email]
	return ok
}

// Calls returns the provider methods invoked so far, in order.
func (f *FakeIdentity) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeIdentity) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *FakeIdentity) issue(a *account) service.Credential {
	tok := "id-" + uuid.NewString()
	f.tokens[tok] = a.email
	return service.Credential{
		User:         service.SessionUser{UID: a.uid, Email: a.email, DisplayName: a.displayName},
		IDToken:      tok,
		RefreshToken: "refresh-" + a.uid,
	}
}

// SignIn implements service.IdentityProvider.
func (f *FakeIdentity) SignIn(ctx context.Context, email, password string) (service.Credential, error) {
	f.record("SignIn")
	if f.SignInErr != nil {
		return service.Credential{}, f.SignInErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[email]
	if !ok || a.password != password {
		return service.Credential{}, service.NewAuthError(service.CodeInvalidCredentials, fmt.Errorf("INVALID_LOGIN_CREDENTIALS"))
	}
	return f.issue(a), nil
}

// SignUp implements service.IdentityProvider.
func (f *FakeIdentity) SignUp(ctx context.Context, email, password, displayName string) (service.Credential, error) {
	f.record("SignUp")
	if f.SignUpErr != nil {
		return service.Credential{}, f.SignUpErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[email]; exists {
		return service.Credential{}, service.NewAuthError(service.CodeEmailInUse, fmt.Errorf("EMAIL_EXISTS"))
	}
	a := &account{uid: uuid.NewString(), email: email, password: password, displayName: displayName}
	f.accounts[email] = a
	return f.issue(a), nil
}

// SignInWithIDToken implements service.IdentityProvider. Any non-empty
// token signs in as google-user@example.com.
func (f *FakeIdentity) SignInWithIDToken(ctx context.Context, idToken string) (service.Credential, error) {
	f.record("SignInWithIDToken")
	if f.GoogleErr != nil {
		return service.Credential{}, f.GoogleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	const email = "google-user@example.com"
	a, ok := f.accounts[email]
	if !ok {
		a = &account{uid: uuid.NewString(), email: email, displayName: "Google User"}
		f.accounts[email] = a
	}
	return f.issue(a), nil
}

// SendPasswordReset implements service.IdentityProvider.
func (f *FakeIdentity) SendPasswordReset(ctx context.Context, email string) error {
	f.record("SendPasswordReset")
	return f.ResetErr
}

// ChangePassword implements service.IdentityProvider.
func (f *FakeIdentity) ChangePassword(ctx context.Context, idToken, newPassword string) (service.Credential, error) {
	f.record("ChangePassword")
	if f.ChangePasswordErr != nil {
		return service.Credential{}, f.ChangePasswordErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[f.tokens[idToken]]
	if !ok {
		return service.Credential{}, service.NewAuthError(service.CodeRequiresRecentLogin, fmt.Errorf("INVALID_ID_TOKEN"))
	}
	a.password = newPassword
	return f.issue(a), nil
}

// DeleteAccount implements service.IdentityProvider.
func (f *FakeIdentity) DeleteAccount(ctx context.Context, idToken string) error {
	f.record("DeleteAccount")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.tokens[idToken]
	if !ok {
		return service.NewAuthError(service.CodeRequiresRecentLogin, fmt.Errorf("INVALID_ID_TOKEN"))
	}
	delete(f.accounts, email)
	return nil
}

// Refresh implements service.IdentityProvider.
func (f *FakeIdentity) Refresh(ctx context.Context, cred service.Credential) (service.Credential, error) {
	f.record("Refresh")
	if f.RefreshErr != nil {
		return cred, f.RefreshErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[cred.User.Email]
	if !ok {
		return cred, service.ErrNoActiveSession
	}
	return f.issue(a), nil
}

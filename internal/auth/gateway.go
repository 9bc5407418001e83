// Package auth is the Authentication Gateway: form checks, provider calls
// and session persistence for every account flow.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/oauth2"

	"planify/internal/event"
	"planify/internal/logging"
	"planify/internal/service"
	"planify/internal/session"
	"planify/internal/validate"
)

// Gateway wraps an identity provider and the local session store.
type Gateway struct {
	idp    service.IdentityProvider
	store  *session.Store
	logger *slog.Logger
}

// New creates a Gateway.
func New(idp service.IdentityProvider, store *session.Store, logger *slog.Logger) *Gateway {
	return &Gateway{idp: idp, store: store, logger: logging.OrDiscard(logger)}
}

// Current returns the stored session, or nil if nobody is signed in.
func (g *Gateway) Current() (*service.Credential, error) {
	return g.store.Load()
}

// SignIn checks form and signs in with email and password.
func (g *Gateway) SignIn(ctx context.Context, form validate.LoginForm) (service.SessionUser, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validate.Struct(form); err != nil {
		return service.SessionUser{}, err
	}

	cred, err := g.idp.SignIn(ctx, form.Email, form.Password)
	if err != nil {
		return service.SessionUser{}, g.fail("sign in", err, service.CodeInvalidCredentials)
	}
	return g.persist(cred)
}

// SignUp checks form and creates an account.
func (g *Gateway) SignUp(ctx context.Context, form validate.RegisterForm) (service.SessionUser, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if err := validate.Struct(form); err != nil {
		return service.SessionUser{}, err
	}

	cred, err := g.idp.SignUp(ctx, form.Email, form.Password, form.Name)
	if err != nil {
		return service.SessionUser{}, g.fail("sign up", err,
			service.CodeEmailInUse, service.CodeWeakPassword, service.CodeInvalidEmail)
	}
	return g.persist(cred)
}

// SignInWithGoogle exchanges a Google ID token for a session.
func (g *Gateway) SignInWithGoogle(ctx context.Context, idToken string) (service.SessionUser, error) {
	if idToken == "" {
		return service.SessionUser{}, service.NewAuthError(service.CodeUnknown, fmt.Errorf("missing google id token"))
	}
	cred, err := g.idp.SignInWithIDToken(ctx, idToken)
	if err != nil {
		return service.SessionUser{}, g.fail("google sign in", err)
	}
	return g.persist(cred)
}

// SignOut clears the local session. It never contacts the provider.
func (g *Gateway) SignOut() error {
	if err := g.store.Clear(); err != nil {
		return err
	}
	g.logger.Debug("signed out")
	return nil
}

// SendPasswordReset asks the provider to email a reset link.
func (g *Gateway) SendPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validate.Struct(validate.ResetForm{Email: email}); err != nil {
		return err
	}
	if err := g.idp.SendPasswordReset(ctx, email); err != nil {
		return g.fail("password reset", err)
	}
	return nil
}

// ChangePassword re-proves the current password, then sets the new one.
// Form errors, including reusing the current password, are reported before
// any provider call.
func (g *Gateway) ChangePassword(ctx context.Context, form validate.ChangePasswordForm) error {
	if err := validate.Struct(form); err != nil {
		return err
	}
	cred, err := g.requireSession()
	if err != nil {
		return err
	}

	reauthed, err := g.idp.SignIn(ctx, cred.User.Email, form.Current)
	if err != nil {
		if service.AuthCodeOf(err) == service.CodeInvalidCredentials {
			return service.NewAuthError(service.CodeWrongCurrentPassword, err)
		}
		return g.fail("reauthenticate", err, service.CodeRequiresRecentLogin)
	}

	next, err := g.idp.ChangePassword(ctx, reauthed.IDToken, form.New)
	if err != nil {
		return g.fail("change password", err, service.CodeWeakPassword, service.CodeRequiresRecentLogin)
	}
	if next.IDToken == "" {
		next = reauthed
	}
	_, err = g.persist(next)
	return err
}

// DeleteAccount deletes the signed-in account, then clears the session.
func (g *Gateway) DeleteAccount(ctx context.Context) error {
	cred, err := g.requireSession()
	if err != nil {
		return err
	}

	fresh, err := session.Fresh(ctx, g.idp, g.store, *cred)
	if err != nil {
		return g.fail("refresh", err, service.CodeRequiresRecentLogin)
	}
	if err := g.idp.DeleteAccount(ctx, fresh.IDToken); err != nil {
		return g.fail("delete account", err, service.CodeRequiresRecentLogin, service.CodeNoActiveSession)
	}
	return g.store.Clear()
}

// TokenSource serves the session ID token, refreshing it as needed.
func (g *Gateway) TokenSource(ctx context.Context) (oauth2.TokenSource, *service.Credential, error) {
	cred, err := g.requireSession()
	if err != nil {
		return nil, nil, err
	}
	return session.TokenSource(ctx, g.idp, g.store, *cred, g.logger), cred, nil
}

// OnAuthStateChanged subscribes fn to sign-in and sign-out.
func (g *Gateway) OnAuthStateChanged(fn func(*service.SessionUser)) *event.Subscription {
	return g.store.OnChange(fn)
}

func (g *Gateway) requireSession() (*service.Credential, error) {
	cred, err := g.store.Load()
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, service.ErrNoActiveSession
	}
	return cred, nil
}

func (g *Gateway) persist(cred service.Credential) (service.SessionUser, error) {
	cred = session.Complete(cred)
	if err := g.store.Save(cred); err != nil {
		return service.SessionUser{}, err
	}
	g.logger.Debug("session stored", "uid", cred.User.UID)
	return cred.User, nil
}

// fail logs err and narrows its code to allowed; anything else becomes
// CodeUnknown.
func (g *Gateway) fail(op string, err error, allowed ...service.AuthCode) error {
	g.logger.Debug("auth failed", "op", op, "err", err)
	code := service.AuthCodeOf(err)
	for _, a := range allowed {
		if code == a {
			return err
		}
	}
	return service.NewAuthError(service.CodeUnknown, err)
}

// Package firebase implements the identity provider and task store
// contracts against a Firebase project.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"planify/internal/service"
	"planify/internal/session"
)

const (
	// APITimeout is the timeout for identity calls.
	APITimeout = 10 * time.Second

	// SecureTokenURL exchanges refresh tokens for new ID tokens.
	SecureTokenURL = "https://securetoken.googleapis.com/v1/token"

	googleProviderID = "google.com"
)

// Identity implements service.IdentityProvider with the Identity Toolkit
// REST API.
type Identity struct {
	svc      *identitytoolkit.Service
	apiKey   string
	tokenURL string
	client   *http.Client
}

// IdentityOption customizes NewIdentity.
type IdentityOption func(*Identity)

// WithTokenURL overrides the refresh endpoint (for testing).
func WithTokenURL(u string) IdentityOption {
	return func(i *Identity) { i.tokenURL = u }
}

// WithRefreshClient sets the HTTP client used for refresh calls (for testing).
func WithRefreshClient(c *http.Client) IdentityOption {
	return func(i *Identity) { i.client = c }
}

// NewIdentity creates an Identity client for the project owning apiKey.
// Extra client options are appended after the API key.
func NewIdentity(ctx context.Context, apiKey string, clientOpts []option.ClientOption, opts ...IdentityOption) (*Identity, error) {
	if apiKey == "" {
		return nil, errors.New("firebase api key not configured")
	}
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, clientOpts...)
	svc, err := identitytoolkit.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity service: %w", err)
	}

	id := &Identity{svc: svc, apiKey: apiKey, tokenURL: SecureTokenURL}
	for _, o := range opts {
		o(id)
	}
	return id, nil
}

// SignIn verifies an email/password pair.
func (i *Identity) SignIn(ctx context.Context, email, password string) (service.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := i.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return service.Credential{}, wrapError(err, signInCodes)
	}
	return credential(resp.LocalId, resp.Email, resp.DisplayName, resp.IdToken, resp.RefreshToken, resp.ExpiresIn), nil
}

// SignUp creates an email/password account.
func (i *Identity) SignUp(ctx context.Context, email, password, displayName string) (service.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := i.svc.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}).Context(ctx).Do()
	if err != nil {
		return service.Credential{}, wrapError(err, signUpCodes)
	}
	name := resp.DisplayName
	if name == "" {
		name = displayName
	}
	return credential(resp.LocalId, resp.Email, name, resp.IdToken, resp.RefreshToken, resp.ExpiresIn), nil
}

// SignInWithIDToken exchanges a Google ID token for a Firebase session.
func (i *Identity) SignInWithIDToken(ctx context.Context, idToken string) (service.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	body := url.Values{}
	body.Set("id_token", idToken)
	body.Set("providerId", googleProviderID)

	resp, err := i.svc.Relyingparty.VerifyAssertion(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyAssertionRequest{
		PostBody:            body.Encode(),
		RequestUri:          "http://localhost",
		ReturnSecureToken:   true,
		ReturnIdpCredential: true,
	}).Context(ctx).Do()
	if err != nil {
		return service.Credential{}, wrapError(err, nil)
	}
	if resp.ErrorMessage != "" {
		return service.Credential{}, service.NewAuthError(service.CodeUnknown, errors.New(resp.ErrorMessage))
	}
	return credential(resp.LocalId, resp.Email, resp.DisplayName, resp.IdToken, resp.RefreshToken, resp.ExpiresIn), nil
}

// SendPasswordReset emails a reset link to email.
func (i *Identity) SendPasswordReset(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := i.svc.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		Email:       email,
		RequestType: "PASSWORD_RESET",
	}).Context(ctx).Do()
	if err != nil {
		return wrapError(err, nil)
	}
	return nil
}

// ChangePassword sets a new password for the account owning idToken.
func (i *Identity) ChangePassword(ctx context.Context, idToken, newPassword string) (service.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := i.svc.Relyingparty.SetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartySetAccountInfoRequest{
		IdToken:           idToken,
		Password:          newPassword,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return service.Credential{}, wrapError(err, changePasswordCodes)
	}
	return credential(resp.LocalId, resp.Email, resp.DisplayName, resp.IdToken, resp.RefreshToken, resp.ExpiresIn), nil
}

// DeleteAccount removes the account owning idToken.
func (i *Identity) DeleteAccount(ctx context.Context, idToken string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := i.svc.Relyingparty.DeleteAccount(&identitytoolkit.IdentitytoolkitRelyingpartyDeleteAccountRequest{
		IdToken: idToken,
	}).Context(ctx).Do()
	if err != nil {
		return wrapError(err, changePasswordCodes)
	}
	return nil
}

// Refresh trades cred's refresh token for a new ID token.
func (i *Identity) Refresh(ctx context.Context, cred service.Credential) (service.Credential, error) {
	if cred.RefreshToken == "" {
		return cred, service.ErrNoActiveSession
	}
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	if i.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, i.client)
	}

	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  i.tokenURL + "?key=" + url.QueryEscape(i.apiKey),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	tok, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken}).Token()
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && strings.Contains(string(re.Body), "TOKEN_EXPIRED") {
			return cred, service.NewAuthError(service.CodeRequiresRecentLogin, err)
		}
		return cred, service.NewAuthError(service.CodeUnknown, err)
	}

	next := cred
	next.IDToken = tok.AccessToken
	if idt, ok := tok.Extra("id_token").(string); ok && idt != "" {
		next.IDToken = idt
	}
	if tok.RefreshToken != "" {
		next.RefreshToken = tok.RefreshToken
	}
	next.ExpiresAt = tok.Expiry
	return session.Complete(next), nil
}

func credential(uid, email, name, idToken, refreshToken string, expiresIn int64) service.Credential {
	cred := service.Credential{
		User:         service.SessionUser{UID: uid, Email: email, DisplayName: name},
		IDToken:      idToken,
		RefreshToken: refreshToken,
	}
	if expiresIn > 0 {
		cred.ExpiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return session.Complete(cred)
}

// Provider error messages, matched by prefix ("WEAK_PASSWORD : Password
// should be at least 6 characters").
var (
	signInCodes = map[string]service.AuthCode{
		"EMAIL_NOT_FOUND":           service.CodeInvalidCredentials,
		"INVALID_PASSWORD":          service.CodeInvalidCredentials,
		"INVALID_LOGIN_CREDENTIALS": service.CodeInvalidCredentials,
		"USER_DISABLED":             service.CodeInvalidCredentials,
		"INVALID_EMAIL":             service.CodeInvalidEmail,
	}
	signUpCodes = map[string]service.AuthCode{
		"EMAIL_EXISTS":  service.CodeEmailInUse,
		"WEAK_PASSWORD": service.CodeWeakPassword,
		"INVALID_EMAIL": service.CodeInvalidEmail,
	}
	changePasswordCodes = map[string]service.AuthCode{
		"WEAK_PASSWORD":                  service.CodeWeakPassword,
		"CREDENTIAL_TOO_OLD_LOGIN_AGAIN": service.CodeRequiresRecentLogin,
		"TOKEN_EXPIRED":                  service.CodeRequiresRecentLogin,
		"INVALID_ID_TOKEN":               service.CodeRequiresRecentLogin,
		"USER_NOT_FOUND":                 service.CodeNoActiveSession,
	}
)

// wrapError maps provider errors to categorized AuthErrors. Anything not in
// codes, including timeouts and transport failures, is CodeUnknown.
func wrapError(err error, codes map[string]service.AuthCode) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return service.NewAuthError(service.CodeUnknown, errors.New("request timed out"))
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		for prefix, code := range codes {
			if strings.HasPrefix(msg, prefix) {
				return service.NewAuthError(code, errors.New(msg))
			}
		}
		if msg != "" {
			return service.NewAuthError(service.CodeUnknown, errors.New(msg))
		}
	}
	return service.NewAuthError(service.CodeUnknown, err)
}

// Package service defines the backend-agnostic contracts for identity, task
// storage and quotes. Commands never import the Firebase SDK directly.
package service

import "context"

// IdentityProvider is the hosted authentication service.
// Every method is a single request/response against the provider.
type IdentityProvider interface {
	// SignIn verifies an email/password pair.
	SignIn(ctx context.Context, email, password string) (Credential, error)

	// SignUp creates an email/password account. displayName may be empty.
	SignUp(ctx context.Context, email, password, displayName string) (Credential, error)

	// SignInWithIDToken exchanges a Google OpenID Connect ID token for a
	// provider session.
	SignInWithIDToken(ctx context.Context, idToken string) (Credential, error)

	// SendPasswordReset asks the provider to email a reset link.
	SendPasswordReset(ctx context.Context, email string) error

	// ChangePassword sets a new password for the account owning idToken.
	ChangePassword(ctx context.Context, idToken, newPassword string) (Credential, error)

	// DeleteAccount removes the account owning idToken.
	DeleteAccount(ctx context.Context, idToken string) error

	// Refresh trades the refresh token in cred for a new ID token.
	Refresh(ctx context.Context, cred Credential) (Credential, error)
}

// TaskStore is the hosted task collection. Operations are independent;
// no transaction or batching is provided.
type TaskStore interface {
	// CreateTask stores a new unchecked task; the store assigns the ID.
	CreateTask(ctx context.Context, t NewTask) (Task, error)

	// ListTasks returns every valid document in the collection.
	// Malformed documents are reported in Listing.Skipped, not as errors.
	ListTasks(ctx context.Context) (Listing, error)

	// UpdateTask merges patch into the document. Last writer wins.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) error

	// DeleteTask removes the document. Deleting a missing document is not an error.
	DeleteTask(ctx context.Context, id string) error
}

// QuoteSource fetches a motivational quote.
type QuoteSource interface {
	Fetch(ctx context.Context) (Quote, error)
}

package commands_test

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"
	"strings"
	"testing"

	"planify/internal/commands"
	"planify/internal/exitcode"
	"planify/internal/i18n"
	"planify/internal/prompt"
	"planify/internal/service"
	"planify/internal/testutil"
)

func storedSession(t *testing.T, f *fixture) *service.Credential {
	t.Helper()
	cred, err := f.sessions.Load()
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return cred
}

// TestLoginCommand_Success verifies a password sign-in stores the session
func TestLoginCommand_Success(t *testing.T) {
	f := newFixture(t, false)
	f.idp.AddAccount("ana@example.com", "secret1", "Ana")

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("ana@example.com", "secret1")
	stdout, stderr, code := f.run(t, cmd)

	expectCode(t, code, exitcode.Success)
	expectOutput(t, "stderr", stderr, "")
	expectOutput(t, "stdout", stdout, "Welcome, Ana!\n")
	if cred := storedSession(t, f); cred == nil || cred.User.Email != "ana@example.com" {
		t.Errorf("expected stored session, got %+v", cred)
	}
}

// TestLoginCommand_AlreadySignedIn verifies login does not ask again
func TestLoginCommand_AlreadySignedIn(t *testing.T) {
	f := newFixture(t, false)
	f.signIn(t)
	f.env.Prompt = &testutil.FakePrompter{Err: prompt.ErrCancelled}

	stdout, _, code := f.run(t, &commands.LoginCmd{})

	expectCode(t, code, exitcode.Success)
	expectOutput(t, "stdout", stdout, "Already signed in as ana@example.com\n")
}

// TestLoginCommand_WrongPassword verifies provider errors map to auth messages
func TestLoginCommand_WrongPassword(t *testing.T) {
	f := newFixture(t, false)
	f.idp.AddAccount("ana@example.com", "secret1", "Ana")

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("ana@example.com", "nope")
	stdout, stderr, code := f.run(t, cmd)

	expectCode(t, code, exitcode.AuthError)
	expectOutput(t, "stdout", stdout, "")
	expectOutput(t, "stderr", stderr, "error: Invalid email or password\n")
	if cred := storedSession(t, f); cred != nil {
		t.Error("expected no session after failed sign in")
	}
}

// TestLoginCommand_EmptyFields verifies validation happens before any call
func TestLoginCommand_EmptyFields(t *testing.T) {
	f := newFixture(t, false)

	_, _, code := f.run(t, &commands.LoginCmd{})

	expectCode(t, code, exitcode.UserError)
	if calls := f.idp.Calls(); len(calls) != 0 {
		t.Errorf("expected no provider calls, got %v", calls)
	}
}

// TestLoginCommand_Prompts verifies missing fields are asked for
func TestLoginCommand_Prompts(t *testing.T) {
	f := newFixture(t, false)
	f.idp.AddAccount("ana@example.com", "secret1", "Ana")
	p := &testutil.FakePrompter{Answers: map[string]string{
		i18n.FieldPassword: "secret1",
	}}
	f.env.Prompt = p

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("ana@example.com", "")
	_, stderr, code := f.run(t, cmd)

	expectCode(t, code, exitcode.Success)
	expectOutput(t, "stderr", stderr, "")
	if !slices.Equal(p.Asked(), []string{i18n.FieldPassword}) {
		t.Errorf("expected only the password prompt, got %v", p.Asked())
	}
}

// TestLoginCommand_PromptCancelled verifies an aborted form is a user error
func TestLoginCommand_PromptCancelled(t *testing.T) {
	f := newFixture(t, false)
	f.env.Prompt = &testutil.FakePrompter{Err: prompt.ErrCancelled}

	_, stderr, code := f.run(t, &commands.LoginCmd{})

	expectCode(t, code, exitcode.UserError)
	expectOutput(t, "stderr", stderr, "error: Cancelled\n")
}

// TestLoginCommand_NoBackend verifies account commands need a configured project
func TestLoginCommand_NoBackend(t *testing.T) {
	f := newFixture(t, false)
	f.env.Auth = nil

	for _, cmd := range []commands.Command{
		&commands.LoginCmd{},
		&commands.RegisterCmd{},
		&commands.LogoutCmd{},
		&commands.ResetPasswordCmd{},
		&commands.PasswdCmd{},
		&commands.DeleteAccountCmd{},
	} {
		_, stderr, code := f.run(t, cmd)
		if code != exitcode.AuthError {
			t.Errorf("%s: expected exit code %d, got %d", cmd.Name(), exitcode.AuthError, code)
		}
		if !strings.Contains(stderr, "backend not configured") {
			t.Errorf("%s: unexpected stderr %q", cmd.Name(), stderr)
		}
	}
}

// TestLoginCommand_GoogleNoOAuthClient verifies --google fails without client credentials
func TestLoginCommand_GoogleNoOAuthClient(t *testing.T) {
	f := newFixture(t, false)

	cmd := &commands.LoginCmd{}
	cmd.SetGoogle(true)
	stdout, stderr, code := f.run(t, cmd)

	expectCode(t, code, exitcode.AuthError)
	expectOutput(t, "stdout", stdout, "")
	if !strings.Contains(stderr, "Then run 'planify login --google' again.") {
		t.Errorf("expected setup instructions, got %q", stderr)
	}
}

// TestLoginCommand_Google verifies the browser token is exchanged for a session
func TestLoginCommand_Google(t *testing.T) {
	f := newFixture(t, false)
	if err := os.WriteFile(f.env.Config.OAuthClientPath(), []byte(`{"installed":{"client_id":"test"}}`), 0600); err != nil {
		t.Fatalf("writing oauth client: %v", err)
	}
	var gotFile string
	f.env.GoogleToken = func(ctx context.Context, clientFile string, errOut io.Writer) (string, error) {
		gotFile = clientFile
		return "google-id-token", nil
	}

	cmd := &commands.LoginCmd{}
	cmd.SetGoogle(true)
	stdout, stderr, code := f.run(t, cmd)

	expectCode(t, code, exitcode.Success)
	expectOutput(t, "stderr", stderr, "")
	expectOutput(t, "stdout", stdout, "Welcome, Google User!\n")
	if gotFile != f.env.Config.OAuthClientPath() {
		t.Errorf("expected client file %q, got %q", f.env.Config.OAuthClientPath(), gotFile)
	}
}

// TestLoginCommand_GoogleFlowFails verifies browser flow errors are auth errors
func TestLoginCommand_GoogleFlowFails(t *testing.T) {
	f := newFixture(t, false)
	if err := os.WriteFile(f.env.Config.OAuthClientPath(), []byte(`{}`), 0600); err != nil {
		t.Fatalf("writing oauth client: %v", err)
	}
	f.env.GoogleToken = func(ctx context.Context, clientFile string, errOut io.Writer) (string, error) {
		return "", errors.New("oauth callback timed out")
	}

	cmd := &commands.LoginCmd{}
	cmd.SetGoogle(true)
	_, stderr, code := f.run(t, cmd)

	expectCode(t, code, exitcode.AuthError)
	expectOutput(t, "stderr", stderr, "error: oauth callback timed out\n")
}

// Tests for register command
func TestRegisterCommand(t *testing.T) {
	tests := []struct {
		name                              string
		displayName, email, pass, confirm string
		code                              int
		stdout, stderr                    string
	}{
		{
			name: "success", displayName: "Ana", email: "ana@example.com", pass: "secret1", confirm: "secret1",
			code: exitcode.Success, stdout: "Account created successfully!\nWelcome, Ana!\n",
		},
		{
			name: "no name uses email", email: "bia@example.com", pass: "secret1", confirm: "secret1",
			code: exitcode.Success, stdout: "Account created successfully!\nWelcome, bia!\n",
		},
		{
			name: "passwords differ", email: "ana@example.com", pass: "secret1", confirm: "secret2",
			code: exitcode.UserError, stderr: "error: Passwords don't match\n",
		},
		{
			name: "short password", email: "ana@example.com", pass: "abc", confirm: "abc",
			code: exitcode.UserError, stderr: "error: Password must be at least 6 characters\n",
		},
		{
			name: "invalid email", email: "ana@example", pass: "secret1", confirm: "secret1",
			code: exitcode.UserError, stderr: "error: Please enter a valid email\n",
		},
		{
			name: "short name", displayName: "A", email: "ana@example.com", pass: "secret1", confirm: "secret1",
			code: exitcode.UserError, stderr: "error: Name must be at least 2 characters\n",
		},
		{
			name: "email in use", email: "taken@example.com", pass: "secret1", confirm: "secret1",
			code: exitcode.AuthError, stderr: "error: This email is already in use\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.idp.AddAccount("taken@example.com", "whatever", "")

			cmd := &commands.RegisterCmd{}
			cmd.SetForm(tt.displayName, tt.email, tt.pass, tt.confirm)
			stdout, stderr, code := f.run(t, cmd)

			expectCode(t, code, tt.code)
			expectOutput(t, "stdout", stdout, tt.stdout)
			expectOutput(t, "stderr", stderr, tt.stderr)
		})
	}
}

// Tests for logout command
func TestLogoutCommand_NotSignedIn(t *testing.T) {
	f := newFixture(t, false)

	stdout, _, code := f.run(t, &commands.LogoutCmd{})

	expectCode(t, code, exitcode.Success)
	expectOutput(t, "stdout", stdout, "No user signed in\n")
}

func TestLogoutCommand_Yes(t *testing.T) {
	f := newFixture(t, false)
	f.signIn(t)

	cmd := &commands.LogoutCmd{}
	cmd.SetYes(true)
	stdout, _, code := f.run(t, cmd)

	expectCode(t, code, exitcode.Success)
	expectOutput(t, "stdout", stdout, "Signed out\n")
	if cred := storedSession(t, f); cred != nil {
		t.Error("expected session to be cleared")
	}
}

func TestLogoutCommand_NeedsConfirmationWithoutTerminal(t *testing.T) {
	f := newFixture(t, false)
	f.signIn(t)

	_, stderr, code := f.run(t, &commands.LogoutCmd{})

	expectCode(t, code, exitcode.UserError)
	expectOutput(t, "stderr", stderr, "error: Confirmation required (use --yes)\n")
	if cred := storedSession(t, f); cred == nil {
		t.Error("expected session to be kept")
	}
}

func TestLogoutCommand_Confirm(t *testing.T) {
	tests := []struct {
		name      string
		confirmed bool
		stdout    string
		signedIn  bool
	}{
		{"confirmed", true, "Signed out\n", false},
		{"declined", false, "Cancelled\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.signIn(t)
			p := &testutil.FakePrompter{Confirmed: tt.confirmed}
			f.env.Prompt = p

			stdout, _, code := f.run(t, &commands.LogoutCmd{})

			expectCode(t, code, exitcode.Success)
			expectOutput(t, "stdout", stdout, tt.stdout)
			if got := storedSession(t, f) != nil; got != tt.signedIn {
				t.Errorf("expected signed in %v, got %v", tt.signedIn, got)
			}
			if !slices.Equal(p.Asked(), []string{i18n.ConfirmSignOut}) {
				t.Errorf("unexpected prompts %v", p.Asked())
			}
		})
	}
}

// Tests for reset-password command
func TestResetPasswordCommand(t *testing.T) {
	f := newFixture(t, false)
	f.idp.AddAccount("ana@example.com", "secret1", "Ana")

	cmd := &commands.ResetPasswordCmd{}
	cmd.SetEmail(" ana@example.com ")
	stdout, _, code := f.run(t, cmd)

	expectCode(t, code, exitcode.Success)
	expectOutput(t, "stdout", stdout, "Password reset email sent to ana@example.com\n")
	if !slices.Contains(f.idp.Calls(), "SendPasswordReset") {
		t.Error("expected a reset request")
	}
}

func TestResetPasswordCommand_NoEmail(t *testing.T) {
	f := newFixture(t, false)

	_, stderr, code := f.run(t, &commands.ResetPasswordCmd{})

	expectCode(t, code, exitcode.UserError)
	expectOutput(t, "stderr", stderr, "error: Please enter your email\n")
	if calls := f.idp.Calls(); len(calls) != 0 {
		t.Errorf("expected no provider calls, got %v", calls)
	}
}

// Tests for passwd command
func TestPasswdCommand(t *testing.T) {
	tests := []struct {
		name                  string
		current, next, repeat string
		code                  int
		stdout, stderr        string
		password              string
	}{
		{
			name: "success", current: "secret1", next: "secret2", repeat: "secret2",
			code: exitcode.Success, stdout: "Password changed successfully!\n", password: "secret2",
		},
		{
			name: "wrong current", current: "nope99", next: "secret2", repeat: "secret2",
			code: exitcode.AuthError, stderr: "error: Current password is incorrect\n", password: "secret1",
		},
		{
			name: "same as current", current: "secret1", next: "secret1", repeat: "secret1",
			code: exitcode.UserError, stderr: "error: New password must be different from the current one\n", password: "secret1",
		},
		{
			name: "mismatch", current: "secret1", next: "secret2", repeat: "secret3",
			code: exitcode.UserError, stderr: "error: Passwords don't match\n", password: "secret1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.signIn(t)

			cmd := &commands.PasswdCmd{}
			cmd.SetForm(tt.current, tt.next, tt.repeat)
			stdout, stderr, code := f.run(t, cmd)

			expectCode(t, code, tt.code)
			expectOutput(t, "stdout", stdout, tt.stdout)
			expectOutput(t, "stderr", stderr, tt.stderr)
			if got := f.idp.Password("ana@example.com"); got != tt.password {
				t.Errorf("expected password %q, got %q", tt.password, got)
			}
		})
	}
}

func TestPasswdCommand_NotSignedIn(t *testing.T) {
	f := newFixture(t, false)

	cmd := &commands.PasswdCmd{}
	cmd.SetForm("secret1", "secret2", "secret2")
	_, stderr, code := f.run(t, cmd)

	expectCode(t, code, exitcode.AuthError)
	expectOutput(t, "stderr", stderr, "error: No user signed in\n")
}

// Tests for delete-account command
func TestDeleteAccountCommand_Yes(t *testing.T) {
	f := newFixture(t, false)
	f.signIn(t)

	cmd := &commands.DeleteAccountCmd{}
	cmd.SetYes(true)
	stdout, _, code := f.run(t, cmd)

	expectCode(t, code, exitcode.Success)
	expectOutput(t, "stdout", stdout, "Account deleted\n")
	if f.idp.HasAccount("ana@example.com") {
		t.Error("expected account to be deleted")
	}
	if cred := storedSession(t, f); cred != nil {
		t.Error("expected session to be cleared")
	}
}

func TestDeleteAccountCommand_Declined(t *testing.T) {
	f := newFixture(t, false)
	f.signIn(t)
	f.env.Prompt = &testutil.FakePrompter{Confirmed: false}

	stdout, _, code := f.run(t, &commands.DeleteAccountCmd{})

	expectCode(t, code, exitcode.Success)
	expectOutput(t, "stdout", stdout, "Cancelled\n")
	if !f.idp.HasAccount("ana@example.com") {
		t.Error("expected account to be kept")
	}
}

func TestDeleteAccountCommand_NotSignedIn(t *testing.T) {
	f := newFixture(t, false)

	cmd := &commands.DeleteAccountCmd{}
	cmd.SetYes(true)
	_, stderr, code := f.run(t, cmd)

	expectCode(t, code, exitcode.AuthError)
	expectOutput(t, "stderr", stderr, "error: No user signed in\n")
}

func TestDeleteAccountCommand_ProviderFailureKeepsSession(t *testing.T) {
	f := newFixture(t, false)
	f.signIn(t)
	f.idp.DeleteErr = service.NewAuthError(service.CodeRequiresRecentLogin, errors.New("CREDENTIAL_TOO_OLD_LOGIN_AGAIN"))

	cmd := &commands.DeleteAccountCmd{}
	cmd.SetYes(true)
	_, stderr, code := f.run(t, cmd)

	expectCode(t, code, exitcode.AuthError)
	expectOutput(t, "stderr", stderr, "error: For security, please sign in again\n")
	if cred := storedSession(t, f); cred == nil {
		t.Error("expected session to be kept")
	}
}

// Package prompt asks for form input on the terminal for the sign-in,
// registration and change-password screens.
package prompt

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"

	"planify/internal/i18n"
	"planify/internal/validate"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// Prompter fills in form fields interactively. Fields that already hold a
// value are not asked for again.
type Prompter interface {
	Login(ctx context.Context, form *validate.LoginForm) error
	Register(ctx context.Context, form *validate.RegisterForm) error
	ChangePassword(ctx context.Context, form *validate.ChangePasswordForm) error
	Text(ctx context.Context, title string, value *string) error
	Confirm(ctx context.Context, title string) (bool, error)
}

// Translator looks up user-facing strings.
type Translator interface {
	T(key string, args ...any) string
}

// Huh prompts with charmbracelet/huh forms.
type Huh struct {
	tr         Translator
	in         io.Reader
	out        io.Writer
	accessible bool
}

// NewHuh creates a Prompter reading from in and drawing to out. Accessible
// mode uses plain line prompts instead of the full-screen form.
func NewHuh(tr Translator, in io.Reader, out io.Writer, accessible bool) *Huh {
	return &Huh{tr: tr, in: in, out: out, accessible: accessible}
}

// Login implements Prompter.
func (h *Huh) Login(ctx context.Context, form *validate.LoginForm) error {
	var fields []huh.Field
	if form.Email == "" {
		fields = append(fields, h.input(i18n.FieldEmail, &form.Email, false))
	}
	if form.Password == "" {
		fields = append(fields, h.input(i18n.FieldPassword, &form.Password, true))
	}
	return h.run(ctx, fields...)
}

// Register implements Prompter.
func (h *Huh) Register(ctx context.Context, form *validate.RegisterForm) error {
	var fields []huh.Field
	if form.Name == "" {
		fields = append(fields, h.input(i18n.FieldName, &form.Name, false))
	}
	if form.Email == "" {
		fields = append(fields, h.input(i18n.FieldEmail, &form.Email, false))
	}
	if form.Password == "" {
		fields = append(fields, h.input(i18n.FieldPassword, &form.Password, true))
	}
	if form.Confirm == "" {
		fields = append(fields, h.input(i18n.FieldConfirmPassword, &form.Confirm, true))
	}
	return h.run(ctx, fields...)
}

// ChangePassword implements Prompter.
func (h *Huh) ChangePassword(ctx context.Context, form *validate.ChangePasswordForm) error {
	var fields []huh.Field
	if form.Current == "" {
		fields = append(fields, h.input(i18n.FieldCurrentPassword, &form.Current, true))
	}
	if form.New == "" {
		fields = append(fields, h.input(i18n.FieldNewPassword, &form.New, true))
	}
	if form.Confirm == "" {
		fields = append(fields, h.input(i18n.FieldConfirmPassword, &form.Confirm, true))
	}
	return h.run(ctx, fields...)
}

// Text implements Prompter. title is a message key.
func (h *Huh) Text(ctx context.Context, title string, value *string) error {
	if *value != "" {
		return nil
	}
	return h.run(ctx, h.input(title, value, false))
}

// Confirm implements Prompter. title is a message key.
func (h *Huh) Confirm(ctx context.Context, title string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(h.tr.T(title)).
		Affirmative(h.tr.T(i18n.ConfirmYes)).
		Negative(h.tr.T(i18n.ConfirmNo)).
		Value(&ok)
	if err := h.run(ctx, field); err != nil {
		return false, err
	}
	return ok, nil
}

func (h *Huh) input(key string, value *string, secret bool) *huh.Input {
	in := huh.NewInput().Title(h.tr.T(key)).Value(value)
	if secret {
		in = in.EchoMode(huh.EchoModePassword)
	}
	return in
}

func (h *Huh) run(ctx context.Context, fields ...huh.Field) error {
	if len(fields) == 0 {
		return nil
	}
	form := huh.NewForm(huh.NewGroup(fields...)).
		WithInput(h.in).
		WithOutput(h.out).
		WithAccessible(h.accessible).
		WithShowHelp(false)
	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

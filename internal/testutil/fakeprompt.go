package testutil

import (
	"context"
	"sync"

	"planify/internal/i18n"
	"planify/internal/validate"
)

// FakePrompter answers prompts from a fixed table instead of the terminal.
type FakePrompter struct {
	mu    sync.Mutex
	asked []string

	// Answers maps a field or title message key to the typed value.
	Answers map[string]string

	// Confirmed is the answer to every Confirm.
	Confirmed bool

	// Err is returned by every prompt, e.g. prompt.ErrCancelled.
	Err error
}

// Asked returns the message keys prompted for, in order.
func (f *FakePrompter) Asked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.asked...)
}

func (f *FakePrompter) fill(key string, value *string) {
	if *value != "" {
		return
	}
	f.asked = append(f.asked, key)
	*value = f.Answers[key]
}

// Login implements prompt.Prompter.
func (f *FakePrompter) Login(ctx context.Context, form *validate.LoginForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.fill(i18n.FieldEmail, &form.Email)
	f.fill(i18n.FieldPassword, &form.Password)
	return nil
}

// Register implements prompt.Prompter.
func (f *FakePrompter) Register(ctx context.Context, form *validate.RegisterForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.fill(i18n.FieldName, &form.Name)
	f.fill(i18n.FieldEmail, &form.Email)
	f.fill(i18n.FieldPassword, &form.Password)
	f.fill(i18n.FieldConfirmPassword, &form.Confirm)
	return nil
}

// ChangePassword implements prompt.Prompter.
func (f *FakePrompter) ChangePassword(ctx context.Context, form *validate.ChangePasswordForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.fill(i18n.FieldCurrentPassword, &form.Current)
	f.fill(i18n.FieldNewPassword, &form.New)
	f.fill(i18n.FieldConfirmPassword, &form.Confirm)
	return nil
}

// Text implements prompt.Prompter.
func (f *FakePrompter) Text(ctx context.Context, title string, value *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.fill(title, value)
	return nil
}

// Confirm implements prompt.Prompter.
func (f *FakePrompter) Confirm(ctx context.Context, title string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	f.asked = append(f.asked, title)
	return f.Confirmed, nil
}

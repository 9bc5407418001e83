package service

import (
	"strings"
	"time"
)

// Task represents a single to-do item held in the remote document store.
type Task struct {
	ID        string
	Title     string
	IsChecked bool
	DueDate   *time.Time // nil when the task has no due date
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTask carries the fields a caller supplies when creating a task.
// Title must already be trimmed and non-empty.
type NewTask struct {
	Title   string
	DueDate *time.Time
}

// TaskPatch lists the fields to merge into an existing task.
// Nil pointers are left untouched.
type TaskPatch struct {
	Title     *string
	IsChecked *bool
	DueDate   *time.Time
	UpdatedAt time.Time
}

// Listing is the result of reading the whole task collection.
type Listing struct {
	Tasks []Task

	// Skipped holds the IDs of documents that were dropped because they
	// were missing a title or had a non-boolean isChecked.
	Skipped []string
}

// SessionUser is the authenticated identity cached locally after sign-in.
type SessionUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Name returns the display name, falling back to the local part of the
// email and finally to fallback.
func (u SessionUser) Name(fallback string) string {
	if n := strings.TrimSpace(u.DisplayName); n != "" {
		return n
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
		return local
	}
	return fallback
}

// Credential is the stored session: the user plus the provider tokens.
type Credential struct {
	User         SessionUser `json:"user"`
	IDToken      string      `json:"idToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresAt    time.Time   `json:"expiresAt"`
}

// Expired reports whether the ID token is past (or within skew of) its expiry.
func (c Credential) Expired(now time.Time, skew time.Duration) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(skew).Before(c.ExpiresAt)
}

// Quote is a motivational quote and its author.
type Quote struct {
	Text   string
	Author string
}

// Stats summarizes a task list.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// CountTasks computes Stats for tasks.
func CountTasks(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsChecked {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

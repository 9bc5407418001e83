// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"planify/internal/service"
)

// FakeTaskStore is an in-memory implementation of service.TaskStore for testing.
type FakeTaskStore struct {
	mu      sync.RWMutex
	tasks   []service.Task
	skipped []string
	calls   map[string]int

	// Error injection for testing
	CreateErr error
	ListErr   error
	UpdateErr error
	DeleteErr error

	// UpdateErrs, when set, gives the result of each UpdateTask call in
	// call order before falling back to UpdateErr. A nil entry succeeds.
	UpdateErrs []error

	// Gate, when set, blocks UpdateTask and DeleteTask until it receives a
	// value or is closed.
	Gate chan struct{}
}

// NewFakeTaskStore creates an empty FakeTaskStore.
func NewFakeTaskStore() *FakeTaskStore {
	return &FakeTaskStore{calls: make(map[string]int)}
}

// AddTask seeds a task and returns its ID.
func (f *FakeTaskStore) AddTask(title string, checked bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	id := uuid.NewString()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, IsChecked: checked, CreatedAt: now, UpdatedAt: now})
	return id
}

// AddMalformed seeds a document that ListTasks will skip.
func (f *FakeTaskStore) AddMalformed(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skipped = append(f.skipped, id)
}

// Stored returns a copy of the stored tasks.
func (f *FakeTaskStore) Stored() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Calls returns how many times op ("create", "list", "update", "delete") ran.
func (f *FakeTaskStore) Calls(op string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[op]
}

func (f *FakeTaskStore) record(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *FakeTaskStore) wait(ctx context.Context) {
	if f.Gate == nil {
		return
	}
	select {
	case <-f.Gate:
	case <-ctx.Done():
	}
}

// CreateTask implements service.TaskStore.
func (f *FakeTaskStore) CreateTask(ctx context.Context, nt service.NewTask) (service.Task, error) {
	f.record("create")
	if f.CreateErr != nil {
		return service.Task{}, &service.StoreError{Op: "create", Err: f.CreateErr}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	t := service.Task{ID: uuid.NewString(), Title: nt.Title, DueDate: nt.DueDate, CreatedAt: now, UpdatedAt: now}
	f.tasks = append(f.tasks, t)
	return t, nil
}

// ListTasks implements service.TaskStore.
func (f *FakeTaskStore) ListTasks(ctx context.Context) (service.Listing, error) {
	f.record("list")
	if f.ListErr != nil {
		return service.Listing{}, &service.StoreError{Op: "list", Err: f.ListErr}
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	listing := service.Listing{Tasks: make([]service.Task, len(f.tasks))}
	copy(listing.Tasks, f.tasks)
	listing.Skipped = append(listing.Skipped, f.skipped...)
	return listing, nil
}

// UpdateTask implements service.TaskStore.
func (f *FakeTaskStore) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) error {
	f.mu.Lock()
	f.calls["update"]++
	failure := f.UpdateErr
	if len(f.UpdateErrs) > 0 {
		failure, f.UpdateErrs = f.UpdateErrs[0], f.UpdateErrs[1:]
	}
	f.mu.Unlock()

	f.wait(ctx)
	if failure != nil {
		return &service.StoreError{Op: "update", Err: failure}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.IsChecked != nil {
			f.tasks[i].IsChecked = *patch.IsChecked
		}
		if patch.DueDate != nil {
			f.tasks[i].DueDate = patch.DueDate
		}
		if !patch.UpdatedAt.IsZero() {
			f.tasks[i].UpdatedAt = patch.UpdatedAt
		}
	}
	return nil
}

// DeleteTask implements service.TaskStore.
func (f *FakeTaskStore) DeleteTask(ctx context.Context, id string) error {
	f.record("delete")
	f.wait(ctx)
	if f.DeleteErr != nil {
		return &service.StoreError{Op: "delete", Err: f.DeleteErr}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

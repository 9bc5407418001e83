// Package tasklist holds the session's in-memory task list and keeps it in
// step with the remote store.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"planify/internal/event"
	"planify/internal/logging"
	"planify/internal/service"
	"planify/internal/validate"
)

// ErrNotFound is returned when an operation names a task that is not in the list.
var ErrNotFound = errors.New("task not found")

// Snapshot is the observable state of a Controller.
type Snapshot struct {
	Tasks   []service.Task
	Loading bool
	Skipped []string
}

// Stats counts the tasks in the snapshot.
func (s Snapshot) Stats() service.Stats {
	return service.CountTasks(s.Tasks)
}

// Controller owns the ordered task list. Toggle and Remove apply locally
// first and confirm with the store in the background.
type Controller struct {
	store  service.TaskStore
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	tasks []service.Task
	// versions counts toggles per task for the life of the Controller.
	// Load keeps them, so a toggle issued before a reload stays older.
	versions map[string]uint64
	loading  bool
	skipped  []string

	// pubMu orders deliveries: snapshots reach subscribers in the order
	// they were taken. Subscribers must not mutate the Controller.
	pubMu    sync.Mutex
	changes  event.Bus[Snapshot]
	inflight sync.WaitGroup
}

// New creates an empty Controller over store.
func New(store service.TaskStore, logger *slog.Logger) *Controller {
	return &Controller{
		store:    store,
		logger:   logging.OrDiscard(logger),
		now:      time.Now,
		versions: make(map[string]uint64),
	}
}

// SetClock replaces the time source used for updatedAt.
func (c *Controller) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Load replaces the list with the store's contents. The list is left as is
// when the store fails; Loading is false again either way.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
	c.publish()

	listing, err := c.store.ListTasks(ctx)

	c.mu.Lock()
	c.loading = false
	if err == nil {
		c.tasks = slices.Clone(listing.Tasks)
		c.skipped = slices.Clone(listing.Skipped)
	}
	c.mu.Unlock()
	c.publish()

	if err != nil {
		c.logger.Warn("loading tasks", "err", err)
		return err
	}
	if n := len(listing.Skipped); n > 0 {
		c.logger.Warn("skipped malformed tasks", "count", n, "ids", listing.Skipped)
	}
	c.logger.Debug("tasks loaded", "count", len(listing.Tasks))
	return nil
}

// Add validates title, creates the task remotely and appends it once the
// store confirms. An empty title never reaches the store.
func (c *Controller) Add(ctx context.Context, title string, due *time.Time) (service.Task, error) {
	trimmed, err := validate.Title(title)
	if err != nil {
		return service.Task{}, err
	}

	task, err := c.store.CreateTask(ctx, service.NewTask{Title: trimmed, DueDate: due})
	if err != nil {
		c.logger.Warn("creating task", "err", err)
		return service.Task{}, err
	}

	c.mu.Lock()
	c.tasks = append(c.tasks, task)
	c.mu.Unlock()
	c.publish()
	return task, nil
}

// Toggle flips the task's checked flag immediately and writes it to the
// store in the background. The returned channel yields the store error, if
// any, and is then closed. On failure the flag is reverted unless a newer
// toggle of the same task has happened since.
func (c *Controller) Toggle(ctx context.Context, id string) (<-chan error, error) {
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	prev := c.tasks[i].IsChecked
	prevUpdated := c.tasks[i].UpdatedAt
	next := !prev
	now := c.now().UTC()
	c.tasks[i].IsChecked = next
	c.tasks[i].UpdatedAt = now
	c.versions[id]++
	version := c.versions[id]
	c.mu.Unlock()
	c.publish()

	patch := service.TaskPatch{IsChecked: &next, UpdatedAt: now}
	return c.background(ctx, "toggle", func(ctx context.Context) error {
		return c.store.UpdateTask(ctx, id, patch)
	}, func() bool {
		if c.versions[id] != version {
			return false
		}
		if j := c.index(id); j >= 0 {
			c.tasks[j].IsChecked = prev
			c.tasks[j].UpdatedAt = prevUpdated
			return true
		}
		return false
	}), nil
}

// Remove drops the task immediately and deletes it in the background. On
// failure the task is put back at its former position.
func (c *Controller) Remove(ctx context.Context, id string) (<-chan error, error) {
	c.mu.Lock()
	i := c.index(id)
	if i < 0 {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	removed := c.tasks[i]
	c.tasks = slices.Delete(c.tasks, i, i+1)
	c.mu.Unlock()
	c.publish()

	return c.background(ctx, "remove", func(ctx context.Context) error {
		return c.store.DeleteTask(ctx, id)
	}, func() bool {
		if c.index(id) >= 0 {
			return false
		}
		c.tasks = slices.Insert(c.tasks, min(i, len(c.tasks)), removed)
		return true
	}), nil
}

// background runs call detached from ctx cancellation. revert runs with
// the lock held and reports whether it changed the list.
func (c *Controller) background(ctx context.Context, op string, call func(context.Context) error, revert func() bool) <-chan error {
	errc := make(chan error, 1)
	ctx = context.WithoutCancel(ctx)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer close(errc)

		err := call(ctx)
		if err == nil {
			return
		}
		c.logger.Warn("task update failed", "op", op, "err", err)

		c.mu.Lock()
		changed := revert()
		c.mu.Unlock()
		if changed {
			c.publish()
		}
		errc <- err
	}()
	return errc
}

// Wait blocks until every background store call has finished.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Tasks returns a copy of the list in insertion order.
func (c *Controller) Tasks() []service.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tasks)
}

// Find returns the task with id.
func (c *Controller) Find(id string) (service.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		return c.tasks[i], true
	}
	return service.Task{}, false
}

// Loading reports whether a Load is in progress.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Skipped returns the IDs of documents dropped by the last Load.
func (c *Controller) Skipped() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.skipped)
}

// Stats counts the current tasks.
func (c *Controller) Stats() service.Stats {
	return c.Snapshot().Stats()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// OnChange subscribes fn to every list or loading change.
func (c *Controller) OnChange(fn func(Snapshot)) *event.Subscription {
	return c.changes.Subscribe(fn)
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		Tasks:   slices.Clone(c.tasks),
		Loading: c.loading,
		Skipped: slices.Clone(c.skipped),
	}
}

func (c *Controller) publish() {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	snap := c.snapshot()
	c.mu.Unlock()
	c.changes.Publish(snap)
}

// index must be called with mu held.
func (c *Controller) index(id string) int {
	return slices.IndexFunc(c.tasks, func(t service.Task) bool { return t.ID == id })
}

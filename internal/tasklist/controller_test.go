package tasklist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"planify/internal/service"
	"planify/internal/tasklist"
	"planify/internal/testutil"
	"planify/internal/validate"
)

func loaded(t *testing.T, store *testutil.FakeTaskStore) *tasklist.Controller {
	t.Helper()
	c := tasklist.New(store, nil)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestLoad_ReplacesListAndReportsSkipped(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	store.AddTask("One", false)
	store.AddTask("Two", true)
	store.AddMalformed("broken")

	c := tasklist.New(store, nil)
	var loadingSeen []bool
	sub := c.OnChange(func(s tasklist.Snapshot) { loadingSeen = append(loadingSeen, s.Loading) })
	defer sub.Unsubscribe()

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tasks := c.Tasks()
	if len(tasks) != 2 || tasks[0].Title != "One" || tasks[1].Title != "Two" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
	if skipped := c.Skipped(); len(skipped) != 1 || skipped[0] != "broken" {
		t.Errorf("skipped = %v", skipped)
	}
	if len(loadingSeen) != 2 || !loadingSeen[0] || loadingSeen[1] {
		t.Errorf("loading transitions = %v", loadingSeen)
	}
	if c.Loading() {
		t.Error("still loading")
	}
}

func TestLoad_FailureKeepsList(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	store.AddTask("One", false)
	c := loaded(t, store)

	store.ListErr = errors.New("unavailable")
	err := c.Load(context.Background())
	var se *service.StoreError
	if !errors.As(err, &se) || se.Op != "list" {
		t.Fatalf("expected list StoreError, got %v", err)
	}
	if len(c.Tasks()) != 1 {
		t.Error("list changed on failed load")
	}
	if c.Loading() {
		t.Error("loading flag left set")
	}
}

func TestAdd_TrimsTitle(t *testing.T) {
	titles := []string{"Buy milk", "  Buy milk", "Buy milk\t", "\n  Buy milk  \n"}
	for _, title := range titles {
		store := testutil.NewFakeTaskStore()
		c := tasklist.New(store, nil)

		task, err := c.Add(context.Background(), title, nil)
		if err != nil {
			t.Fatalf("Add(%q): %v", title, err)
		}
		if task.Title != "Buy milk" {
			t.Errorf("Add(%q) title = %q", title, task.Title)
		}
		if stored := store.Stored(); len(stored) != 1 || stored[0].Title != "Buy milk" {
			t.Errorf("Add(%q) stored %+v", title, stored)
		}
	}
}

func TestAdd_EmptyTitleRejectedLocally(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	store.AddTask("One", false)
	c := loaded(t, store)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := c.Add(context.Background(), title, nil)
		if _, ok := validate.AsError(err); !ok {
			t.Errorf("Add(%q): expected validation error, got %v", title, err)
		}
	}
	if n := len(c.Tasks()); n != 1 {
		t.Errorf("list length = %d", n)
	}
	if n := store.Calls("create"); n != 0 {
		t.Errorf("create called %d times", n)
	}
}

func TestAdd_FailureLeavesListUnchanged(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	store.CreateErr = errors.New("permission denied")
	c := tasklist.New(store, nil)

	if _, err := c.Add(context.Background(), "Task", nil); err == nil {
		t.Fatal("expected error")
	}
	if n := len(c.Tasks()); n != 0 {
		t.Errorf("list length = %d", n)
	}
}

func TestAdd_KeepsDueDate(t *testing.T) {
	c := tasklist.New(testutil.NewFakeTaskStore(), nil)
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	task, err := c.Add(context.Background(), "Pay rent", &due)
	if err != nil {
		t.Fatal(err)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("due = %v", task.DueDate)
	}
}

func TestToggle_Optimistic(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	id := store.AddTask("One", false)
	store.Gate = make(chan struct{})
	c := loaded(t, store)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c.SetClock(func() time.Time { return fixed })

	errc, err := c.Toggle(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	task, _ := c.Find(id)
	if !task.IsChecked {
		t.Error("toggle not applied before the store answered")
	}
	if !task.UpdatedAt.Equal(fixed) {
		t.Errorf("updatedAt = %v", task.UpdatedAt)
	}

	close(store.Gate)
	if err := <-errc; err != nil {
		t.Fatalf("toggle error: %v", err)
	}
	if stored := store.Stored(); !stored[0].IsChecked || !stored[0].UpdatedAt.Equal(fixed) {
		t.Errorf("stored %+v", stored[0])
	}
}

func TestToggle_DoubleToggleRestores(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	id := store.AddTask("One", true)
	store.Gate = make(chan struct{})
	c := loaded(t, store)

	first, err := c.Toggle(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Toggle(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	close(store.Gate)

	for _, errc := range []<-chan error{first, second} {
		if err := <-errc; err != nil {
			t.Fatal(err)
		}
	}
	if task, _ := c.Find(id); !task.IsChecked {
		t.Error("double toggle did not restore the flag")
	}
}

func TestToggle_FailureReverts(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	id := store.AddTask("One", false)
	c := loaded(t, store)
	store.UpdateErr = errors.New("deadline exceeded")

	errc, err := c.Toggle(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	var se *service.StoreError
	if err := <-errc; !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if task, _ := c.Find(id); task.IsChecked {
		t.Error("failed toggle not reverted")
	}
}

func TestToggle_FailureRestoresUpdatedAt(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	id := store.AddTask("One", false)
	c := loaded(t, store)
	before, _ := c.Find(id)

	c.SetClock(func() time.Time { return before.UpdatedAt.Add(time.Hour) })
	store.UpdateErr = errors.New("unavailable")

	errc, err := c.Toggle(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	<-errc

	after, _ := c.Find(id)
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Errorf("expected updatedAt %v, got %v", before.UpdatedAt, after.UpdatedAt)
	}
}

// waitForUpdates blocks until the store has received n update calls.
func waitForUpdates(t *testing.T, store *testutil.FakeTaskStore, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for store.Calls("update") < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d update calls", n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestToggle_FailureBeforeReloadDoesNotRevertLaterToggle(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	id := store.AddTask("One", false)
	store.Gate = make(chan struct{})
	c := loaded(t, store)
	store.UpdateErrs = []error{errors.New("unavailable"), nil}

	first, err := c.Toggle(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	waitForUpdates(t, store, 1)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := c.Toggle(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	waitForUpdates(t, store, 2)

	close(store.Gate)
	if err := <-first; err == nil {
		t.Fatal("expected the first toggle to fail")
	}
	if err := <-second; err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	c.Wait()

	local, _ := c.Find(id)
	remote := store.Stored()[0]
	if !remote.IsChecked {
		t.Fatal("expected the later toggle to reach the store")
	}
	if local.IsChecked != remote.IsChecked {
		t.Errorf("local checked=%v, remote checked=%v", local.IsChecked, remote.IsChecked)
	}
}

func TestOnChange_LastSnapshotIsCurrent(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	var ids []string
	for _, title := range []string{"One", "Two", "Three", "Four"} {
		ids = append(ids, store.AddTask(title, false))
	}
	c := loaded(t, store)
	store.UpdateErrs = []error{errors.New("unavailable"), nil, errors.New("unavailable"), nil}

	var last tasklist.Snapshot
	sub := c.OnChange(func(s tasklist.Snapshot) { last = s })
	defer sub.Unsubscribe()

	for _, id := range ids {
		if _, err := c.Toggle(context.Background(), id); err != nil {
			t.Fatal(err)
		}
	}
	c.Wait()

	want := c.Stats()
	if got := last.Stats(); got != want {
		t.Errorf("last published stats %+v, current %+v", got, want)
	}
}

func TestToggle_StaleFailureDoesNotRevertNewerToggle(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	id := store.AddTask("One", false)
	store.Gate = make(chan struct{})
	c := loaded(t, store)
	store.UpdateErr = errors.New("unavailable")

	first, _ := c.Toggle(context.Background(), id)
	second, _ := c.Toggle(context.Background(), id)

	// Release the calls one at a time.
	store.Gate <- struct{}{}
	store.Gate <- struct{}{}
	<-first
	<-second
	c.Wait()

	// Only the latest toggle reverts, back to its own prior value.
	if task, _ := c.Find(id); !task.IsChecked {
		t.Error("expected the latest toggle's prior value")
	}
}

func TestToggle_UnknownID(t *testing.T) {
	c := loaded(t, testutil.NewFakeTaskStore())
	if _, err := c.Toggle(context.Background(), "missing"); !errors.Is(err, tasklist.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove_Optimistic(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	store.AddTask("One", false)
	id := store.AddTask("Two", false)
	store.Gate = make(chan struct{})
	c := loaded(t, store)

	errc, err := c.Remove(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Find(id); ok {
		t.Error("task still listed before the store answered")
	}
	close(store.Gate)
	if err := <-errc; err != nil {
		t.Fatal(err)
	}
	if n := len(store.Stored()); n != 1 {
		t.Errorf("stored %d tasks", n)
	}
}

func TestRemove_FailureRestoresPosition(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	store.AddTask("One", false)
	id := store.AddTask("Two", false)
	store.AddTask("Three", false)
	c := loaded(t, store)
	store.DeleteErr = errors.New("unavailable")

	errc, err := c.Remove(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if err := <-errc; err == nil {
		t.Fatal("expected error")
	}

	tasks := c.Tasks()
	if len(tasks) != 3 || tasks[1].ID != id {
		t.Errorf("task not restored in place: %+v", tasks)
	}
}

func TestStats(t *testing.T) {
	store := testutil.NewFakeTaskStore()
	store.AddTask("One", true)
	store.AddTask("Two", false)
	store.AddTask("Three", false)
	c := loaded(t, store)

	want := service.Stats{Total: 3, Completed: 1, Pending: 2}
	if got := c.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

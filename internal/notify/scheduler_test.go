package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"planify/internal/notify"
	"planify/internal/testutil"
)

func TestScheduleReminder_Delivers(t *testing.T) {
	d := &testutil.FakeDeliverer{}
	s := notify.NewScheduler(d, nil)
	ctx := context.Background()

	var received []notify.Notification
	sub := s.OnReceived(func(n notify.Notification) { received = append(received, n) })
	defer sub.Unsubscribe()

	id, err := s.ScheduleReminder(ctx, "Task reminder", "You have pending tasks!", 10*time.Millisecond, false)
	if err != nil || id == "" {
		t.Fatalf("ScheduleReminder = %q, %v", id, err)
	}
	if err := s.Wait(ctx); err != nil {
		t.Fatal(err)
	}

	got := d.Notifications()
	if len(got) != 1 || got[0].Title != "Task reminder" || got[0].Body != "You have pending tasks!" || got[0].ID != id {
		t.Errorf("delivered %+v", got)
	}
	if !got[0].Important {
		t.Error("reminder not marked important")
	}
	if len(received) != 1 {
		t.Errorf("received %d events", len(received))
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d", s.Pending())
	}
}

func TestScheduleReminder_PermissionAskedOnce(t *testing.T) {
	d := &testutil.FakeDeliverer{Denied: true}
	s := notify.NewScheduler(d, nil)
	ctx := context.Background()

	for range 3 {
		id, err := s.ScheduleReminder(ctx, "t", "b", 0, false)
		if err != nil || id != "" {
			t.Fatalf("expected silent skip, got %q, %v", id, err)
		}
	}
	if n := d.PermissionRequests(); n != 1 {
		t.Errorf("permission asked %d times", n)
	}
	if n := len(d.Notifications()); n != 0 {
		t.Errorf("delivered %d notifications", n)
	}
}

func TestScheduleReminder_PermissionErrorSkips(t *testing.T) {
	d := &testutil.FakeDeliverer{PermissionErr: errors.New("no dbus")}
	s := notify.NewScheduler(d, nil)

	if id, err := s.ScheduleReminder(context.Background(), "t", "b", 0, false); err != nil || id != "" {
		t.Errorf("expected silent skip, got %q, %v", id, err)
	}
}

func TestScheduleReminder_DeliverFailureIsSilent(t *testing.T) {
	d := &testutil.FakeDeliverer{DeliverErr: errors.New("notify-send missing")}
	s := notify.NewScheduler(d, nil)
	ctx := context.Background()

	if _, err := s.ScheduleReminder(ctx, "t", "b", 0, false); err != nil {
		t.Fatal(err)
	}
	if err := s.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if s.Pending() != 0 {
		t.Error("failed reminder still pending")
	}
}

func TestScheduleReminder_Repeat(t *testing.T) {
	d := &testutil.FakeDeliverer{Delivered: make(chan notify.Notification, 64)}
	s := notify.NewScheduler(d, nil)
	ctx := context.Background()

	id, err := s.ScheduleReminder(ctx, "t", "b", 5*time.Millisecond, true)
	if err != nil {
		t.Fatal(err)
	}
	for range 2 {
		select {
		case <-d.Delivered:
		case <-time.After(2 * time.Second):
			t.Fatal("repeat not delivered")
		}
	}
	s.Cancel(id)

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Wait(waitCtx); err != nil {
		t.Fatalf("Wait after cancel: %v", err)
	}
}

func TestCancel_BeforeFire(t *testing.T) {
	d := &testutil.FakeDeliverer{}
	s := notify.NewScheduler(d, nil)
	ctx := context.Background()

	if _, err := s.ScheduleReminder(ctx, "t", "b", time.Hour, false); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ScheduleReminder(ctx, "t", "b", time.Hour, false); err != nil {
		t.Fatal(err)
	}
	s.CancelAll()
	s.Cancel("unknown")

	if err := s.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(d.Notifications()); n != 0 {
		t.Errorf("delivered %d notifications", n)
	}
}

func TestScheduleReminder_InvalidDelay(t *testing.T) {
	s := notify.NewScheduler(&testutil.FakeDeliverer{}, nil)
	ctx := context.Background()

	if _, err := s.ScheduleReminder(ctx, "t", "b", -time.Second, false); err == nil {
		t.Error("expected error for negative delay")
	}
	if _, err := s.ScheduleReminder(ctx, "t", "b", 0, true); err == nil {
		t.Error("expected error for zero repeat delay")
	}
}

func TestTrigger(t *testing.T) {
	d := &testutil.FakeDeliverer{}
	s := notify.NewScheduler(d, nil)
	trig := notify.NewTrigger(s, func() notify.Reminder {
		return notify.Reminder{Title: "Task reminder", Body: "You have pending tasks!"}
	})
	ctx := context.Background()

	steps := []struct {
		pending int
		fires   bool
	}{
		{0, false},
		{2, true},
		{2, false},
		{1, true},
		{0, false},
		{1, true},
	}
	for i, step := range steps {
		id, err := trig.Observe(ctx, step.pending)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if fired := id != ""; fired != step.fires {
			t.Errorf("step %d (pending %d): fired = %v, want %v", i, step.pending, fired, step.fires)
		}
	}
	if err := s.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(d.Notifications()); n != 3 {
		t.Errorf("delivered %d notifications, want 3", n)
	}
}

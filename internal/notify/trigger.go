package notify

import (
	"context"
	"sync"
	"time"
)

// Reminder is the content and timing of a pending-task reminder.
type Reminder struct {
	Title  string
	Body   string
	Delay  time.Duration
	Repeat bool
}

// Trigger schedules a reminder whenever the observed pending-task count
// changes to a non-zero value.
type Trigger struct {
	s        *Scheduler
	reminder func() Reminder

	mu   sync.Mutex
	last int
}

// NewTrigger creates a Trigger. reminder is called each time one is
// scheduled so the text follows the current locale.
func NewTrigger(s *Scheduler, reminder func() Reminder) *Trigger {
	return &Trigger{s: s, reminder: reminder}
}

// Observe records pending and schedules a reminder if the trigger rule
// matches. It returns the reminder ID, or "" if nothing was scheduled.
func (t *Trigger) Observe(ctx context.Context, pending int) (string, error) {
	t.mu.Lock()
	fire := pending != 0 && pending != t.last
	t.last = pending
	t.mu.Unlock()
	if !fire {
		return "", nil
	}
	r := t.reminder()
	return t.s.ScheduleReminder(ctx, r.Title, r.Body, r.Delay, r.Repeat)
}

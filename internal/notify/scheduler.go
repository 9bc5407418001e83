// Package notify schedules local reminder notifications.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"planify/internal/event"
	"planify/internal/logging"
	"planify/internal/service"
)

// Notification is one delivered or pending reminder.
type Notification struct {
	ID        string
	Title     string
	Body      string
	Important bool
	At        time.Time
}

// Deliverer shows notifications to the user.
type Deliverer interface {
	// RequestPermission asks whether notifications may be shown.
	RequestPermission(ctx context.Context) (bool, error)

	// Deliver shows n immediately.
	Deliver(n Notification) error
}

// Scheduler delays and repeats notifications. Permission is asked once;
// when it is denied, scheduling is a silent no-op.
type Scheduler struct {
	d      Deliverer
	logger *slog.Logger
	now    func() time.Time

	permOnce  sync.Once
	permitted bool

	mu      sync.Mutex
	pending map[string]*reminder
	wg      sync.WaitGroup

	received event.Bus[Notification]
}

type reminder struct {
	n      Notification
	delay  time.Duration
	repeat bool
	timer  *time.Timer
	finish sync.Once
}

// NewScheduler creates a Scheduler delivering through d.
func NewScheduler(d Deliverer, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		d:       d,
		logger:  logging.OrDiscard(logger),
		now:     time.Now,
		pending: make(map[string]*reminder),
	}
}

// RequestPermission asks the deliverer once and caches the answer in memory.
func (s *Scheduler) RequestPermission(ctx context.Context) bool {
	s.permOnce.Do(func() {
		ok, err := s.d.RequestPermission(ctx)
		if err != nil {
			s.logger.Warn("notification permission", "err", &service.NotificationError{Op: "permission", Err: err})
		}
		s.permitted = ok && err == nil
		s.logger.Debug("notification permission", "granted", s.permitted)
	})
	return s.permitted
}

// ScheduleReminder delivers title and body after delay, and again every
// delay when repeat is set. It returns the reminder ID, or "" when
// notifications are not permitted.
func (s *Scheduler) ScheduleReminder(ctx context.Context, title, body string, delay time.Duration, repeat bool) (string, error) {
	if delay < 0 {
		return "", &service.NotificationError{Op: "schedule", Err: errors.New("negative delay")}
	}
	if repeat && delay == 0 {
		return "", &service.NotificationError{Op: "schedule", Err: errors.New("repeating reminder needs a delay")}
	}
	if !s.RequestPermission(ctx) {
		s.logger.Debug("reminder skipped, no permission")
		return "", nil
	}

	r := &reminder{
		n:      Notification{ID: uuid.NewString(), Title: title, Body: body, Important: true},
		delay:  delay,
		repeat: repeat,
	}

	s.mu.Lock()
	s.pending[r.n.ID] = r
	s.wg.Add(1)
	r.timer = time.AfterFunc(delay, func() { s.fire(r) })
	s.mu.Unlock()

	s.logger.Debug("reminder scheduled", "id", r.n.ID, "delay", delay, "repeat", repeat)
	return r.n.ID, nil
}

func (s *Scheduler) fire(r *reminder) {
	n := r.n
	n.At = s.now()
	if err := s.d.Deliver(n); err != nil {
		s.logger.Warn("delivering notification", "err", &service.NotificationError{Op: "deliver", Err: err})
	} else {
		s.received.Publish(n)
	}

	s.mu.Lock()
	_, live := s.pending[r.n.ID]
	if live && r.repeat {
		r.timer.Reset(r.delay)
		s.mu.Unlock()
		return
	}
	delete(s.pending, r.n.ID)
	s.mu.Unlock()
	r.finish.Do(s.wg.Done)
}

// Cancel stops the reminder with id. Unknown IDs are ignored.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	r, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	if r.timer.Stop() {
		r.finish.Do(s.wg.Done)
	}
}

// CancelAll stops every pending reminder.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.Cancel(id)
	}
}

// Pending returns how many reminders are scheduled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Wait blocks until every reminder has fired for the last time or been
// cancelled, or ctx is done.
func (s *Scheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnReceived subscribes fn to every delivered notification.
func (s *Scheduler) OnReceived(fn func(Notification)) *event.Subscription {
	return s.received.Subscribe(fn)
}

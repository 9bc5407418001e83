package testutil

import (
	"context"
	"sync"

	"planify/internal/notify"
)

// FakeDeliverer records notifications instead of showing them.
type FakeDeliverer struct {
	mu          sync.Mutex
	delivered   []notify.Notification
	permissions int

	// Denied makes RequestPermission refuse.
	Denied bool

	// Error injection for testing
	PermissionErr error
	DeliverErr    error

	// Delivered, when set, receives every notification after it is recorded.
	Delivered chan notify.Notification
}

// RequestPermission implements notify.Deliverer.
func (f *FakeDeliverer) RequestPermission(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.permissions++
	if f.PermissionErr != nil {
		return false, f.PermissionErr
	}
	return !f.Denied, nil
}

// Deliver implements notify.Deliverer.
func (f *FakeDeliverer) Deliver(n notify.Notification) error {
	f.mu.Lock()
	err := f.DeliverErr
	if err == nil {
		f.delivered = append(f.delivered, n)
	}
	ch := f.Delivered
	f.mu.Unlock()
	if err == nil && ch != nil {
		ch <- n
	}
	return err
}

// Notifications returns what has been delivered so far.
func (f *FakeDeliverer) Notifications() []notify.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notify.Notification, len(f.delivered))
	copy(out, f.delivered)
	return out
}

// PermissionRequests returns how many times permission was asked.
func (f *FakeDeliverer) PermissionRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.permissions
}

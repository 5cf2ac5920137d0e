// Package notify holds the console's single-slot notification banner.
// At most one notification is visible; publishing replaces the current
// one and restarts its auto-dismiss countdown.
package notify

import (
	"sync"
	"time"
)

// Kind selects the banner style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindAlert   Kind = "alert"
)

// DefaultTTL is how long a notification stays visible before it
// dismisses itself.
const DefaultTTL = 6 * time.Second

// Notification is one banner message.
type Notification struct {
	Title   string
	Message string
	Kind    Kind
}

// Notifier owns the single notification slot.
// INVARIANT: at most one notification is current; replacing it
// restarts the dismiss timer from zero
type Notifier struct {
	mu      sync.Mutex
	current *Notification
	gen     uint64
	ttl     time.Duration
	timer   *time.Timer
}

// New creates a Notifier with the default auto-dismiss interval.
func New() *Notifier {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL creates a Notifier with a custom auto-dismiss interval.
func NewWithTTL(ttl time.Duration) *Notifier {
	return &Notifier{ttl: ttl}
}

// Publish replaces the current notification and restarts the timer.
func (n *Notifier) Publish(title, message string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.gen++
	gen := n.gen
	n.current = &Notification{Title: title, Message: message, Kind: kind}

	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// Only dismiss the notification this timer was armed for.
		if n.gen == gen {
			n.current = nil
		}
	})
}

// Success publishes a success notification.
func (n *Notifier) Success(title, message string) {
	n.Publish(title, message, KindSuccess)
}

// Alert publishes an alert notification.
func (n *Notifier) Alert(title, message string) {
	n.Publish(title, message, KindAlert)
}

// Dismiss clears the slot immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.current = nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

// Current returns the visible notification, or nil.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	copied := *n.current
	return &copied
}

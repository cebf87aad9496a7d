package notification

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
)

type registeredListener struct {
	id       uuid.UUID
	listener Listener
}

// Store is an ordered, newest-first, in-memory notification list with
// subscriber callbacks. One instance belongs to one composition root; it is
// safe for concurrent use.
type Store struct {
	mu            sync.Mutex
	notifications []Notification
	listeners     []registeredListener
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Add assigns an ID and creation time, marks the notification unread,
// prepends it, and notifies subscribers. The stored notification is
// returned.
func (s *Store) Add(n Notification) Notification {
	s.mu.Lock()
	n.ID = uuid.Must(uuid.NewV4())
	n.CreatedAt = s.now().UTC()
	n.Read = false
	s.notifications = append([]Notification{n}, s.notifications...)
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notifyAll(listeners, snapshot)
	return n
}

// Notifications returns a copy of the list, newest first.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Notification, len(s.notifications))
	copy(snapshot, s.notifications)
	return snapshot
}

// MarkRead flips one notification to read. Unknown IDs are a no-op and do
// not notify subscribers.
func (s *Store) MarkRead(id uuid.UUID) {
	s.mu.Lock()
	found := false
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notifyAll(listeners, snapshot)
}

// MarkAllRead flips every notification to read and notifies subscribers.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notifyAll(listeners, snapshot)
}

// UnreadCount returns the number of unread notifications.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for i := range s.notifications {
		if !s.notifications[i].Read {
			count++
		}
	}
	return count
}

// HasUnread reports whether an unread notification with the same type and
// message is already in the store.
func (s *Store) HasUnread(notificationType NotificationType, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		n := &s.notifications[i]
		if !n.Read && n.Type == notificationType && n.Message == message {
			return true
		}
	}
	return false
}

// ClearAll empties the list and notifies subscribers. This is local to the
// store; no backing persistence is involved.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.notifications = nil
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notifyAll(listeners, snapshot)
}

// Subscribe registers a listener and returns its subscription handle.
func (s *Store) Subscribe(listener Listener) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.Must(uuid.NewV4())
	s.listeners = append(s.listeners, registeredListener{id: id, listener: listener})
	return Subscription{id: id}
}

// Unsubscribe removes the listener registered under the subscription.
// Unknown subscriptions are a no-op.
func (s *Store) Unsubscribe(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.listeners {
		if s.listeners[i].id == sub.id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// snapshotLocked copies the list and the listener set so both can be used
// after the lock is released. Listeners run outside the lock; one that
// calls back into the store must not deadlock.
func (s *Store) snapshotLocked() ([]Notification, []registeredListener) {
	snapshot := make([]Notification, len(s.notifications))
	copy(snapshot, s.notifications)
	listeners := make([]registeredListener, len(s.listeners))
	copy(listeners, s.listeners)
	return snapshot, listeners
}

func notifyAll(listeners []registeredListener, snapshot []Notification) {
	for _, registered := range listeners {
		registered.listener.OnUpdate(snapshot)
	}
}

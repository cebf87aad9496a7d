package notification

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// NotificationType classifies what produced a notification.
type NotificationType string

const (
	TypeBudgetAlert NotificationType = "budget_alert"
	TypePriceAlert  NotificationType = "price_alert"
	TypeSystem      NotificationType = "system"
)

// Severity indicates how urgently a notification should be surfaced.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a single entry in the store. ID, CreatedAt and Read are
// assigned by the store on Add; callers fill in the rest.
type Notification struct {
	ID        uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	Severity  Severity
	Read      bool
	CreatedAt time.Time
	ActionURL string
}

// Listener receives a snapshot of the full notification list after every
// store mutation. The snapshot is a copy; mutating it does not affect the
// store.
type Listener interface {
	OnUpdate(snapshot []Notification)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(snapshot []Notification)

func (f ListenerFunc) OnUpdate(snapshot []Notification) {
	f(snapshot)
}

// Subscription identifies one registered listener. Removal is by handle
// identity, so registering the same listener twice yields two independent
// subscriptions.
type Subscription struct {
	id uuid.UUID
}

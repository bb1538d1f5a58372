package cart

import "github.com/princinho/boutique/i18n"

type NotificationType string

const (
	Success NotificationType = "success"
	Error   NotificationType = "error"
	Info    NotificationType = "info"
)

// Notification is the user-visible toast produced by a cart or wishlist action.
type Notification struct {
	Type    NotificationType `json:"type"`
	Key     string           `json:"key"`
	Message string           `json:"message"`
}

type Notifier interface {
	Notify(n Notification)
}

// Toasts collects notifications for the response of a single request.
type Toasts []Notification

func (t *Toasts) Notify(n Notification) {
	*t = append(*t, n)
}

// Outcome reports whether an operation was applied and what the user was told.
type Outcome struct {
	OK           bool          `json:"ok"`
	Notification *Notification `json:"notification,omitempty"`
}

type discard struct{}

func (discard) Notify(Notification) {}

func notification(lang i18n.Lang, typ NotificationType, key string) Notification {
	return Notification{Type: typ, Key: key, Message: i18n.T(lang, key)}
}

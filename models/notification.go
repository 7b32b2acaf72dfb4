package models

// NotificationVariant selects the visual treatment of a notification
type NotificationVariant string

// Notification variants
const (
	NotificationSuccess NotificationVariant = "success"
	NotificationError   NotificationVariant = "error"
)

// Notification is a user-visible toast produced by the core. The core only
// emits these; rendering belongs to the caller.
type Notification struct {
	Title       string
	Description string
	Variant     NotificationVariant
}

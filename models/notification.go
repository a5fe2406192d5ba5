package models

// Notification mirrors an unread notification from the fleet backend.
// Presence in the unread list is what makes it unread; marking it read
// removes it from the next fetch.
type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt,omitempty"`
}

package models

import (
	"fmt"
	"time"
)

// Notification types.
const (
	NotificationReminder = "reminder"
	NotificationTrend    = "trend"
)

// Notification is a stored advisory message (check-in reminder or trend
// alert). DedupeKey is deterministic per (kind, goal, date) so repeated
// generation runs never produce duplicates.
type Notification struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	DedupeKey string     `json:"dedupe_key,omitempty"`
}

func (n *Notification) Validate() error {
	if n.Type == "" {
		return fmt.Errorf("notification type cannot be empty")
	}
	if n.Title == "" {
		return fmt.Errorf("notification title cannot be empty")
	}
	return nil
}

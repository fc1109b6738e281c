// Package notify implements the notification read-state engine: a static
// catalog of notifications, a persisted set of read IDs, and the derived
// views (unread count, badge text, most recent entries) built from both.
package notify

import (
	"time"
	"unicode/utf8"
)

// Category groups notifications by the area of the dashboard they concern.
type Category string

const (
	CategorySystem  Category = "system"
	CategoryUser    Category = "user"
	CategoryReport  Category = "report"
	CategoryAlert   Category = "alert"
	CategoryInfo    Category = "info"
	CategoryPayment Category = "payment"
	CategoryTeam    Category = "team"
)

// ContractCategories are the categories exchanged with external services.
var ContractCategories = []Category{
	CategorySystem,
	CategoryUser,
	CategoryReport,
	CategoryAlert,
	CategoryInfo,
}

// Status is the read status of a notification.
type Status string

const (
	StatusRead   Status = "read"
	StatusUnread Status = "unread"
)

// Notification is a single message shown in the dashboard bell panel.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
	Category  Category  `json:"category"`
}

// Status returns StatusRead or StatusUnread depending on IsRead.
func (n Notification) Status() Status {
	if n.IsRead {
		return StatusRead
	}
	return StatusUnread
}

// Preview returns s truncated to at most limit runes, with a trailing
// ellipsis when anything was cut. A limit <= 0 returns s unchanged.
func Preview(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}

	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

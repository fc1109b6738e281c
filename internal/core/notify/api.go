package notify

import (
	"context"
	"time"
)

// FeedItem is the wire form of a notification.
type FeedItem struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Timestamp string   `json:"timestamp"`
	IsRead    bool     `json:"isRead"`
	Category  Category `json:"category"`
}

// FeedResponse is the body returned when listing notifications.
type FeedResponse struct {
	Notifications []FeedItem `json:"notifications"`
	Total         int        `json:"total"`
	UnreadCount   int        `json:"unreadCount"`
}

// MarkAsReadResponse is the body returned after marking a notification.
type MarkAsReadResponse struct {
	Success        bool   `json:"success"`
	NotificationID string `json:"notificationId"`
	UpdatedAt      string `json:"updatedAt"`
}

// ToFeedItem converts n to its wire form with an RFC 3339 timestamp in UTC.
func ToFeedItem(n Notification) FeedItem {
	return FeedItem{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Timestamp: n.Timestamp.UTC().Format(time.RFC3339),
		IsRead:    n.IsRead,
		Category:  n.Category,
	}
}

// NewFeedResponse builds a FeedResponse from a merged list.
func NewFeedResponse(list []Notification) FeedResponse {
	items := make([]FeedItem, len(list))
	for i, n := range list {
		items[i] = ToFeedItem(n)
	}
	return FeedResponse{
		Notifications: items,
		Total:         len(list),
		UnreadCount:   UnreadCount(list),
	}
}

// Feed returns the full merged list as a FeedResponse.
func (c *Center) Feed() FeedResponse {
	return NewFeedResponse(c.Notifications())
}

// Acknowledge marks id as read and returns the response body.
func (c *Center) Acknowledge(ctx context.Context, id string) MarkAsReadResponse {
	c.MarkAsRead(ctx, id)
	return MarkAsReadResponse{
		Success:        true,
		NotificationID: id,
		UpdatedAt:      c.now().UTC().Format(time.RFC3339),
	}
}

// AcknowledgeAll marks every catalog entry as read and returns a response
// for each notification that was unread beforehand.
func (c *Center) AcknowledgeAll(ctx context.Context) []MarkAsReadResponse {
	pending := UnreadOnly(c.Notifications())
	c.MarkAllAsRead(ctx)

	updatedAt := c.now().UTC().Format(time.RFC3339)
	out := make([]MarkAsReadResponse, len(pending))
	for i, n := range pending {
		out[i] = MarkAsReadResponse{Success: true, NotificationID: n.ID, UpdatedAt: updatedAt}
	}
	return out
}

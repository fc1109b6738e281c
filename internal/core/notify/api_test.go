package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_Feed(t *testing.T) {
	c, _ := newTestCenter(t)

	feed := c.Feed()
	assert.Equal(t, 5, feed.Total)
	assert.Equal(t, 3, feed.UnreadCount)
	require.Len(t, feed.Notifications, 5)
	assert.Equal(t, "2026-10-15T11:55:00Z", feed.Notifications[0].Timestamp)

	data, err := json.Marshal(feed)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "notifications")
	assert.Contains(t, decoded, "total")
	assert.Contains(t, decoded, "unreadCount")

	first := decoded["notifications"].([]any)[0].(map[string]any)
	assert.Equal(t, false, first["isRead"])
	assert.Equal(t, "user", first["category"])
}

func TestCenter_Acknowledge(t *testing.T) {
	c, _ := newTestCenter(t)

	resp := c.Acknowledge(context.Background(), "2")
	assert.Equal(t, MarkAsReadResponse{
		Success:        true,
		NotificationID: "2",
		UpdatedAt:      "2026-10-15T12:00:00Z",
	}, resp)
	assert.True(t, c.IsNotificationRead("2"))

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"notificationId":"2","updatedAt":"2026-10-15T12:00:00Z"}`, string(data))
}

func TestNewFeedResponse_Empty(t *testing.T) {
	data, err := json.Marshal(NewFeedResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"notifications":[],"total":0,"unreadCount":0}`, string(data))
}

func TestCenter_AcknowledgeAll(t *testing.T) {
	c, _ := newTestCenter(t)
	ctx := context.Background()

	c.MarkAsRead(ctx, "2")
	resp := c.AcknowledgeAll(ctx)

	ids := make([]string, len(resp))
	for i, r := range resp {
		assert.True(t, r.Success)
		assert.Equal(t, "2026-10-15T12:00:00Z", r.UpdatedAt)
		ids[i] = r.NotificationID
	}
	assert.ElementsMatch(t, []string{"1", "3"}, ids)
	assert.Zero(t, c.UnreadCount())

	assert.Empty(t, c.AcknowledgeAll(ctx))
}

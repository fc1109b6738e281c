package logging

import "context"

type contextKey string

const (
	profileKey        contextKey = "profile"
	notificationIDKey contextKey = "notification_id"
)

// WithProfile adds a storage profile name to the context.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, profileKey, profile)
}

// WithNotificationID adds a notification ID to the context.
func WithNotificationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, notificationIDKey, id)
}

// GetProfile retrieves the profile from the context.
// Returns empty string if not present.
func GetProfile(ctx context.Context) string {
	if p, ok := ctx.Value(profileKey).(string); ok {
		return p
	}
	return ""
}

// GetNotificationID retrieves the notification ID from the context.
// Returns empty string if not present.
func GetNotificationID(ctx context.Context) string {
	if id, ok := ctx.Value(notificationIDKey).(string); ok {
		return id
	}
	return ""
}

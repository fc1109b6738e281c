package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"numeric id", "1", false},
		{"slug id", "payment-2041", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotificationID(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "NotificationID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestNotificationIDField(t *testing.T) {
	err := NotificationIDField("notifications[2].id", " ")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "notifications[2].id", fieldErrs[0].Field)

	assert.NoError(t, NotificationIDField("id", "7"))
}

func TestCategory(t *testing.T) {
	closed := []string{"system", "user"}

	tests := []struct {
		name    string
		input   string
		allowed []string
		wantErr bool
	}{
		{"open set accepts anything", "billing", nil, false},
		{"open set rejects empty", "", nil, true},
		{"closed set accepts member", "user", closed, false},
		{"closed set rejects other", "billing", closed, true},
		{"closed set is case sensitive", "User", closed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Category(tt.input, tt.allowed)
			assert.Equal(t, tt.wantErr, err != nil, "Category(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestStorageKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default key", "notification-read-ids", false},
		{"namespaced key", "work:notification-read-ids", false},
		{"empty", "", true},
		{"with space", "read ids", true},
		{"with newline", "read\nids", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := StorageKey(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "StorageKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

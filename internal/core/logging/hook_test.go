package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "profile and notification_id",
			setupCtx: func() context.Context {
				ctx := WithProfile(context.Background(), "default")
				return WithNotificationID(ctx, "1")
			},
			wantKeys: []string{"profile", "notification_id"},
		},
		{
			name: "only profile",
			setupCtx: func() context.Context {
				return WithProfile(context.Background(), "default")
			},
			wantKeys:  []string{"profile"},
			wantEmpty: []string{"notification_id"},
		},
		{
			name: "only notification_id",
			setupCtx: func() context.Context {
				return WithNotificationID(context.Background(), "1")
			},
			wantKeys:  []string{"notification_id"},
			wantEmpty: []string{"profile"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"profile", "notification_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := tt.setupCtx()

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(ctx).Msg("test")

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("failed to parse log: %v", err)
			}

			for _, key := range tt.wantKeys {
				if _, ok := logEntry[key]; !ok {
					t.Errorf("expected %s to be present in log", key)
				}
			}

			for _, key := range tt.wantEmpty {
				if _, ok := logEntry[key]; ok {
					t.Errorf("expected %s to be absent from log", key)
				}
			}
		})
	}
}

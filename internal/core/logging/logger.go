package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Field names shared by every log line.
const (
	FieldComponent      = "cmp"
	FieldProfile        = "profile"
	FieldNotificationID = "notification_id"
)

// Component returns the global logger tagged with a subsystem name.
func Component(name string) zerolog.Logger {
	return ComponentFrom(log.Logger, name)
}

// ComponentFrom tags base with a subsystem name. Sink and level of base
// are kept.
func ComponentFrom(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str(FieldComponent, name).Logger()
}

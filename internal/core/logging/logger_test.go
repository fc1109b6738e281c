package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	logger := Component("notify")
	logger.Info().Msg("center initialized")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "notify", entry[FieldComponent])
	assert.Equal(t, "center initialized", entry["message"])
}

func TestComponentFrom_KeepsLevel(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).Level(zerolog.WarnLevel)

	logger := ComponentFrom(base, "storage")
	logger.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("kept")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "storage", entry[FieldComponent])
	assert.Equal(t, "kept", entry["message"])
}

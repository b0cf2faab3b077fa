package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestZerologLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	log.Info(context.Background(), "hello", "k", "v", "n", 3)
	log.Error(context.Background(), "failed", "error", errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "hello", lines[0]["message"])
	assert.Equal(t, "v", lines[0]["k"])
	assert.Equal(t, float64(3), lines[0]["n"])

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
}

func TestZerologLogger_WithAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	child := log.With("request_id", "r-1")
	child.Debug(context.Background(), "hidden")
	child.Warn(context.Background(), "careful")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "r-1", lines[0]["request_id"])
}

func TestPairs_DanglingKey(t *testing.T) {
	m := pairs([]any{"a", 1, "orphan"})
	assert.Equal(t, 1, m["a"])
	assert.Equal(t, "orphan", m["!BADKEY"])
}

func TestNew_SelectsBackend(t *testing.T) {
	var buf bytes.Buffer

	_, ok := New(&buf, FormatZerolog, "info").(*ZerologLogger)
	assert.True(t, ok)

	_, ok = New(&buf, FormatConsole, "debug").(*ZerologLogger)
	assert.True(t, ok)

	_, ok = New(&buf, FormatJSON, "info").(*SlogLogger)
	assert.True(t, ok)

	_, ok = New(&buf, "", "").(*SlogLogger)
	assert.True(t, ok)
}

func TestNew_JSONLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, FormatJSON, "warn")
	log.Info(context.Background(), "skip me")
	log.Warn(context.Background(), "keep me")

	out := buf.String()
	assert.NotContains(t, out, "skip me")
	assert.Contains(t, out, "keep me")
}

package logjson

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("WIB", 7*3600)
	l := New(&buf, loc)

	l.Log(map[string]any{"event": "ok", "status": "success"})
	l.Log(map[string]any{"event": "bad", "status": "error"})
	l.Log(map[string]any{"event": "warned", "level": "warn"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var first, second, third map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &third))

	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "error", second["level"])
	assert.Equal(t, "warn", third["level"])

	ts, err := time.Parse(time.RFC3339Nano, first["ts"].(string))
	require.NoError(t, err)
	_, offset := ts.Zone()
	assert.Equal(t, 7*3600, offset)
}

func TestNew_NilLocation(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, nil).Log(map[string]any{"msg": "hi"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.True(t, strings.HasSuffix(entry["ts"].(string), "Z"))
}

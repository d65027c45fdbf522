package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToOutput_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.log")
	zl := NewToOutput("info", "json", path)

	log := NewZapAdapter(zl).WithFields(map[string]interface{}{"component": "picker"})
	log.Debug("dropped", nil)
	log.WithError(errors.New("denied")).Warn("live location failed", map[string]interface{}{"cause": "permission_denied"})
	require.NoError(t, zl.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "live location failed", entry["msg"])
	assert.Equal(t, "picker", entry["component"])
	assert.Equal(t, "permission_denied", entry["cause"])
	assert.Equal(t, "denied", entry["error"])
}

func TestNewToOutput_BadSinkFallsBackToNop(t *testing.T) {
	zl := NewToOutput("debug", "console", filepath.Join(t.TempDir(), "missing", "dir", "form.log"))
	require.NotNil(t, zl)
	assert.NotPanics(t, func() { zl.Info("ignored") })
}

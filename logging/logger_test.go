package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug")

	logger.Debug("transaction added", "bank", "Test Bank", "id", "tx1")

	var entry map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "transaction added", entry["msg"])
	assert.Equal(t, "Test Bank", entry["bank"])
}

func TestNewLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "error")

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "chatty")

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", &buf)

	l.Debug("hidden")
	l.Info("generation recorded", "remaining", 4)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generation recorded", entry["msg"])
	assert.EqualValues(t, 4, entry["remaining"])
}

func TestNew_DevelopmentWritesDebugText(t *testing.T) {
	var buf bytes.Buffer
	l := New("development", &buf)

	l.Debug("reservation held", "client_key", "abc")

	assert.Contains(t, buf.String(), "reservation held")
	assert.Contains(t, buf.String(), "client_key=abc")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New("development", &buf)

	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.Same(t, Default(), FromContext(context.Background()))
}

func TestSetDefault(t *testing.T) {
	previous := Default()
	t.Cleanup(func() { SetDefault(previous) })

	var buf bytes.Buffer
	SetDefault(New("production", &buf))
	SetDefault(nil)

	Info("server listening", "port", "8080")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "server listening", entry["msg"])
	assert.Equal(t, "8080", entry["port"])
}

package logging

import (
	"context"
	"testing"

	"ward/internal/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Messages(t *testing.T) {
	logger := NewLogger(Options{Level: "debug"})

	logger.Info("loaded roster", "count", 3)
	logger.Error("loading roster", "error", "connection refused")

	msgs := logger.Messages()
	require.Len(t, msgs, 2)

	// Newest first.
	assert.Equal(t, "loading roster", msgs[0].Message)
	assert.Equal(t, "ERROR", msgs[0].Level)
	assert.Contains(t, msgs[0].Attributes, Attr{Key: "error", Value: "connection refused"})

	assert.Equal(t, "loaded roster", msgs[1].Message)
	assert.Equal(t, "INFO", msgs[1].Level)
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger := NewLogger(Options{Level: "error"})

	logger.Debug("should be dropped")
	logger.Error("should be kept")

	msgs := logger.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "should be kept", msgs[0].Message)
}

func TestLogger_Subscribe(t *testing.T) {
	logger := NewLogger(Options{Level: "debug"})

	sub, unsub := logger.Subscribe(context.Background())
	defer unsub()

	logger.Info("admitted patient")

	ev := <-sub
	assert.Equal(t, resource.CreatedEvent, ev.Type)
	assert.Equal(t, "admitted patient", ev.Payload.Message)
}

func TestValidLevels(t *testing.T) {
	got := ValidLevels()
	assert.Equal(t, []string{"info", "debug", "error", "warn"}, got)
}

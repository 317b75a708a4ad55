package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartupTimer_MarksKeepOrder(t *testing.T) {
	timer := NewStartupTimer()
	timer.Mark("config")
	timer.MarkDuration("parallel_init", 42*time.Millisecond)
	timer.Mark("window")

	require.Equal(t, []string{"config", "parallel_init", "window"}, timer.order)
	assert.Equal(t, 42*time.Millisecond, timer.phases["parallel_init"])
	assert.GreaterOrEqual(t, timer.Total(), time.Duration(0))

	// Logging must not mutate the recorded phases.
	timer.Log(context.Background())
	assert.Len(t, timer.phases, 3)
}

func TestStartupTimer_DuplicatePhaseOverwrites(t *testing.T) {
	timer := NewStartupTimer()
	timer.MarkDuration("stores", 10*time.Millisecond)
	timer.MarkDuration("stores", 25*time.Millisecond)

	assert.Equal(t, 25*time.Millisecond, timer.phases["stores"])
	assert.Equal(t, []string{"stores"}, timer.order)
}

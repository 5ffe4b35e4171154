package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBackoff(t *testing.T) {
	assert.Equal(t, 2, calculateBackoff(1))
	assert.Equal(t, 4, calculateBackoff(2))
	assert.Equal(t, 8, calculateBackoff(3))
	assert.Equal(t, 3600, calculateBackoff(20), "capped at one hour")
}

func TestDefaultWorkerConfig(t *testing.T) {
	cfg := DefaultWorkerConfig("alerts")

	assert.Equal(t, "alerts", cfg.Queue)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

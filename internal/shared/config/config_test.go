package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("HIGH_VALUE_THRESHOLD", "")
	t.Setenv("DIGEST_SCHEDULE", "")
	t.Setenv("ALERT_QUEUE", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.HighValueThreshold.Equal(decimal.NewFromInt(DefaultHighValueThreshold)))
	assert.Equal(t, "0 8 * * *", cfg.DigestSchedule)
	assert.Equal(t, "alerts", cfg.AlertQueue)
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty falls back", "", "3000000"},
		{"valid value", "500000", "500000"},
		{"decimal value", "1250000.50", "1250000.50"},
		{"garbage falls back", "a lot", "3000000"},
		{"negative falls back", "-1", "3000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := decimal.RequireFromString(tt.want)
			assert.True(t, parseThreshold(tt.raw).Equal(want))
		})
	}
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navalhaclub/agenda-api/internal/domain/schedule"
)

func TestBusinessHoursDefaults(t *testing.T) {
	cfg := &Config{OpenTime: "09:00", CloseTime: "18:00", SlotStep: 30}

	hours := cfg.BusinessHours()
	assert.Equal(t, schedule.NewLocalTime(9, 0), hours.Open)
	assert.Equal(t, schedule.NewLocalTime(18, 0), hours.Close)
	assert.Equal(t, 30, hours.Step)
}

func TestBusinessHoursFallbackOnGarbage(t *testing.T) {
	cfg := &Config{OpenTime: "not-a-time", CloseTime: "99:99", SlotStep: -5}

	hours := cfg.BusinessHours()
	assert.Equal(t, schedule.NewLocalTime(9, 0), hours.Open)
	assert.Equal(t, schedule.NewLocalTime(18, 0), hours.Close)
	assert.Equal(t, 30, hours.Step)
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("BUSINESS_OPEN", "08:00")
	t.Setenv("SLOT_STEP_MINUTES", "15")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.Addr())
	assert.Equal(t, schedule.NewLocalTime(8, 0), cfg.BusinessHours().Open)
	assert.Equal(t, 15, cfg.BusinessHours().Step)
}

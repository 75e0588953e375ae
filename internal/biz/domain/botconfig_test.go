package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotConfig_OutsideBusinessHours(t *testing.T) {
	cfg := BotConfig{BusinessHoursEnabled: true, StartTime: "09:00", EndTime: "18:00"}

	tests := []struct {
		clock   string
		outside bool
	}{
		{"08:59", true},
		{"09:00", false},
		{"12:30", false},
		{"18:00", false},
		{"18:01", true},
		{"00:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			assert.Equal(t, tt.outside, cfg.OutsideBusinessHours(tt.clock))
		})
	}

	cfg.BusinessHoursEnabled = false
	assert.False(t, cfg.OutsideBusinessHours("03:00"))
}

func TestBotConfig_MatchCommand(t *testing.T) {
	cfg := BotConfig{CustomCommands: []CustomCommand{
		{Trigger: "oi", Response: "Hi"},
		{Trigger: "horario", Response: AutoTimeSentinel},
	}}

	cmd, ok := cfg.MatchCommand("oi, que horario é")
	require.True(t, ok)
	assert.Equal(t, "Hi", cmd.Response)

	cmd, ok = cfg.MatchCommand("Qual o HORARIO?")
	require.True(t, ok)
	assert.True(t, cmd.IsAutoTime())

	_, ok = cfg.MatchCommand("bom dia")
	assert.False(t, ok)
}

func TestBotConfig_Normalize(t *testing.T) {
	cfg := BotConfig{StartTime: "9:00", EndTime: "18:30"}
	require.NoError(t, cfg.Normalize())
	assert.Equal(t, "09:00", cfg.StartTime)
	assert.Equal(t, "18:30", cfg.EndTime)

	bad := BotConfig{StartTime: "25:00", EndTime: "18:00"}
	err := bad.Normalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	noTrigger := BotConfig{StartTime: "08:00", EndTime: "18:00", CustomCommands: []CustomCommand{{Response: "x"}}}
	assert.ErrorIs(t, noTrigger.Normalize(), ErrInvalidConfig)
}

func TestBotConfig_Clone(t *testing.T) {
	cfg := DefaultBotConfig()
	cp := cfg.Clone()
	cp.CustomCommands[0].Response = "changed"

	assert.Equal(t, AutoTimeSentinel, cfg.CustomCommands[0].Response)
}

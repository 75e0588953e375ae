package domain

import (
	"fmt"
	"strings"
	"time"
)

// AutoTimeSentinel is the command response replaced by the current local date-time
const AutoTimeSentinel = "AUTO_TIME"

// clockLayout is the zero-padded 24-hour layout business hours are stored in
const clockLayout = "15:04"

// CustomCommand is an administrator-configured trigger/response rule
type CustomCommand struct {
	Trigger  string `json:"trigger" yaml:"trigger"`
	Response string `json:"response" yaml:"response"`
}

// IsAutoTime checks if the response must be rendered as the current date-time
func (c CustomCommand) IsAutoTime() bool {
	return c.Response == AutoTimeSentinel
}

// BotConfig is the process-wide auto-reply configuration
type BotConfig struct {
	AutoReplyEnabled     bool            `json:"auto_reply_enabled" yaml:"auto_reply_enabled"`
	BusinessHoursEnabled bool            `json:"business_hours_enabled" yaml:"business_hours_enabled"`
	StartTime            string          `json:"start_time" yaml:"start_time"`
	EndTime              string          `json:"end_time" yaml:"end_time"`
	WelcomeMessage       string          `json:"welcome_message" yaml:"welcome_message"`
	CustomCommands       []CustomCommand `json:"custom_commands" yaml:"custom_commands"`
}

// Clone returns a deep copy of the configuration
func (c BotConfig) Clone() BotConfig {
	cp := c
	cp.CustomCommands = make([]CustomCommand, len(c.CustomCommands))
	copy(cp.CustomCommands, c.CustomCommands)
	return cp
}

// OutsideBusinessHours reports whether the given "HH:MM" clock falls outside [StartTime, EndTime].
// Both bounds count as inside hours. The comparison is lexical, which is only valid for
// zero-padded values; Normalize guarantees that.
func (c BotConfig) OutsideBusinessHours(clock string) bool {
	if !c.BusinessHoursEnabled {
		return false
	}
	return clock < c.StartTime || clock > c.EndTime
}

// MatchCommand returns the first command whose trigger is contained in body, ignoring case
func (c BotConfig) MatchCommand(body string) (CustomCommand, bool) {
	lower := strings.ToLower(body)
	for _, cmd := range c.CustomCommands {
		if cmd.Trigger == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(cmd.Trigger)) {
			return cmd, true
		}
	}
	return CustomCommand{}, false
}

// Normalize validates the configuration and rewrites the business hours zero-padded
func (c *BotConfig) Normalize() error {
	start, err := normalizeClock(c.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrInvalidConfig, err)
	}
	end, err := normalizeClock(c.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end_time: %v", ErrInvalidConfig, err)
	}
	c.StartTime, c.EndTime = start, end

	for i, cmd := range c.CustomCommands {
		if strings.TrimSpace(cmd.Trigger) == "" {
			return fmt.Errorf("%w: custom_commands[%d]: trigger is required", ErrInvalidConfig, i)
		}
		if strings.TrimSpace(cmd.Response) == "" {
			return fmt.Errorf("%w: custom_commands[%d]: response is required", ErrInvalidConfig, i)
		}
	}
	return nil
}

// normalizeClock accepts "H:MM" or "HH:MM" and returns "HH:MM"
func normalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty time")
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		if t, err = time.Parse("3:04", s); err != nil {
			return "", fmt.Errorf("invalid time %q, expected HH:MM", s)
		}
	}
	return t.Format(clockLayout), nil
}

// ClockOf formats t as the zero-padded "HH:MM" used by business hours
func ClockOf(t time.Time) string {
	return t.Format(clockLayout)
}

// DefaultBotConfig returns the built-in defaults used when no config file is found
func DefaultBotConfig() BotConfig {
	return BotConfig{
		AutoReplyEnabled:     true,
		BusinessHoursEnabled: false,
		StartTime:            "08:00",
		EndTime:              "18:00",
		WelcomeMessage:       "Olá! Obrigado por entrar em contato. Em breve um atendente irá responder.",
		CustomCommands: []CustomCommand{
			{Trigger: "horario", Response: AutoTimeSentinel},
		},
	}
}

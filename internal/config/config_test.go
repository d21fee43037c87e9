package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "AUTH_MODE", "DEFAULT_OCTAVE", "MIDI_TEMPO", "MIDI_TICKS_PER_QUARTER", "ENFORCE_INTERVAL_LIMITS", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsGatewayMode())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, EngineDefaults{
		Octave:                4,
		Tempo:                 120,
		TicksPerQuarter:       480,
		EnforceIntervalLimits: true,
	}, cfg.EngineDefaults())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "gateway")
	t.Setenv("DEFAULT_OCTAVE", "3")
	t.Setenv("MIDI_TEMPO", "96.5")
	t.Setenv("MIDI_TICKS_PER_QUARTER", "960")
	t.Setenv("ENFORCE_INTERVAL_LIMITS", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()
	assert.True(t, cfg.IsGatewayMode())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, EngineDefaults{
		Octave:                3,
		Tempo:                 96.5,
		TicksPerQuarter:       960,
		EnforceIntervalLimits: false,
	}, cfg.EngineDefaults())
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("DEFAULT_OCTAVE", "high")
	t.Setenv("MIDI_TEMPO", "-20")

	cfg := Load()
	assert.Equal(t, 4, cfg.DefaultOctave)
	assert.Equal(t, 120.0, cfg.MIDITempo)
}

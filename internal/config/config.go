package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration.
// The engine keeps no state between requests, so there are no database or
// session secrets here.
type Config struct {
	// Environment
	Environment string
	Port        string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	AuthMode string

	// CORS
	CORSAllowedOrigins []string

	// Engine defaults
	DefaultOctave         int
	MIDITempo             float64
	MIDITicksPerQuarter   int
	EnforceIntervalLimits bool
}

func Load() *Config {
	return &Config{
		Environment:           getEnv("ENVIRONMENT", "development"),
		Port:                  getEnv("PORT", "8080"),
		SentryDSN:             getEnv("SENTRY_DSN", ""),
		AuthMode:              getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
		CORSAllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DefaultOctave:         getEnvInt("DEFAULT_OCTAVE", 4),
		MIDITempo:             getEnvFloat("MIDI_TEMPO", 120),
		MIDITicksPerQuarter:   getEnvInt("MIDI_TICKS_PER_QUARTER", 480),
		EnforceIntervalLimits: getEnv("ENFORCE_INTERVAL_LIMITS", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// IsGatewayMode returns true if running behind an authenticating gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// EngineDefaults are the parameters handed to each computation. They are
// passed explicitly rather than kept as shared state.
type EngineDefaults struct {
	Octave                int
	Tempo                 float64
	TicksPerQuarter       int
	EnforceIntervalLimits bool
}

// EngineDefaults returns the engine parameters configured for this process.
func (c *Config) EngineDefaults() EngineDefaults {
	return EngineDefaults{
		Octave:                c.DefaultOctave,
		Tempo:                 c.MIDITempo,
		TicksPerQuarter:       c.MIDITicksPerQuarter,
		EnforceIntervalLimits: c.EnforceIntervalLimits,
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ROUND_SECONDS", "TICK_INTERVAL", "DICTIONARY", "SUBMIT_RPS", "LOG_PRETTY"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.Port != "5175" || c.RoundSeconds != 30 || c.TickInterval != time.Second {
		t.Errorf("defaults = %+v", c)
	}
	if c.Dictionary != "static" || c.SubmitRPS != 5 || c.LogPretty {
		t.Errorf("defaults = %+v", c)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ROUND_SECONDS", "45")
	t.Setenv("TICK_INTERVAL", "500ms")
	t.Setenv("DICTIONARY", "SQLite")
	t.Setenv("SUBMIT_RPS", "2.5")
	t.Setenv("LOG_PRETTY", "true")
	c := Load()
	if c.Port != "8080" || c.RoundSeconds != 45 || c.TickInterval != 500*time.Millisecond {
		t.Errorf("overrides = %+v", c)
	}
	if c.Dictionary != "sqlite" || c.SubmitRPS != 2.5 || !c.LogPretty {
		t.Errorf("overrides = %+v", c)
	}
}

func TestLoadInvalidFallsBack(t *testing.T) {
	t.Setenv("ROUND_SECONDS", "thirty")
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("SUBMIT_RPS", "fast")
	c := Load()
	if c.RoundSeconds != 30 || c.SessionTTL != 30*time.Minute || c.SubmitRPS != 5 {
		t.Errorf("fallbacks = %+v", c)
	}
}

func TestNonPositiveDurationFallsBack(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "0s")
	t.Setenv("SESSION_TTL", "-5m")
	c := Load()
	if c.TickInterval != time.Second || c.SessionTTL != 30*time.Minute {
		t.Errorf("durations = %v / %v", c.TickInterval, c.SessionTTL)
	}
}

package timeouts_test

import (
	"testing"
	"time"

	"github.com/ktguru/project-service/internal/app/system/timeouts"
)

func TestDefaults(t *testing.T) {
	timeouts.Reset()

	if got := timeouts.Ping(); got != timeouts.DefaultPing {
		t.Errorf("Ping: got %v, want %v", got, timeouts.DefaultPing)
	}
	if got := timeouts.Batch(); got != timeouts.DefaultBatch {
		t.Errorf("Batch: got %v, want %v", got, timeouts.DefaultBatch)
	}
}

func TestConfigure(t *testing.T) {
	timeouts.Reset()
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{Short: 1 * time.Second, Long: 45 * time.Second})

	if got := timeouts.Short(); got != 1*time.Second {
		t.Errorf("Short: got %v", got)
	}
	if got := timeouts.Long(); got != 45*time.Second {
		t.Errorf("Long: got %v", got)
	}
	// Zero values keep the current setting.
	if got := timeouts.Medium(); got != timeouts.DefaultMedium {
		t.Errorf("Medium: got %v, want default", got)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	timeouts.Reset()
	t.Cleanup(timeouts.Reset)

	t.Setenv("TIMEOUT_PING", "3s")
	t.Setenv("TIMEOUT_SHORT", "not-a-duration")

	if got := timeouts.ConfigureFromEnv(); got != 1 {
		t.Errorf("applied: got %d, want 1", got)
	}
	if got := timeouts.Ping(); got != 3*time.Second {
		t.Errorf("Ping: got %v", got)
	}
	if got := timeouts.Short(); got != timeouts.DefaultShort {
		t.Errorf("Short: got %v, want default kept", got)
	}
}

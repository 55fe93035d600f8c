package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/roman-kulish/starpi-replay/internal/log"
)

func newTestConfig() *Config {
	c := NewConfig()
	seed := int64(7)
	c.Settings.Seed = &seed
	c.Settings.TickInterval = Duration(time.Millisecond)
	return c
}

func runScript(t *testing.T, config *Config, script string) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out bytes.Buffer
	if err := run(ctx, config, log.Discard(), strings.NewReader(script), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatalf("run did not finish in time")
	}
	return out.String()
}

func TestRun_Commands(t *testing.T) {
	script := strings.Join([]string{
		"list",
		"seek 12.3",
		"fwd",
		"back",
		"back",
		"select flight-004",
		"select flight-404",
		"seek soon",
		"milestones",
		"gauges",
		"warp",
		"quit",
		"status",
	}, "\n")

	out := runScript(t, newTestConfig(), script)

	for _, want := range []string{
		"* flight-001",
		"  flight-006",
		"[flight-001] 00:12.3 / 00:35.0 T+00:12:30",
		"[flight-001] 00:17.3 / 00:35.0",
		"[flight-001] 00:07.3 / 00:35.0",
		"[flight-004] 00:00.0 / 00:35.0 T+00:00:00 STANDBY",
		"error: invalid flight id: 'flight-404' is not in the catalog",
		"error: invalid time 'soon'",
		"1st Liftoff   T+00:03:00",
		"4th Landing   T+00:35:00",
		"altitude",
		"error: unknown command 'warp'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	if strings.Count(out, "[flight-004]") != 1 {
		t.Errorf("commands after quit were executed:\n%s", out)
	}
}

func TestRun_AutoplayToEnd(t *testing.T) {
	config := newTestConfig()
	config.Replay.Flight = "flight-002"
	config.Replay.Autoplay = true

	out := runScript(t, config, "")

	if !strings.Contains(out, "[flight-002] 00:35.0 / 00:35.0 T+00:35:00 LANDED") {
		t.Errorf("replay did not reach the end of flight:\n%s", out)
	}
	if !strings.Contains(out, "[flight-002] 00:01.0 / 00:35.0") {
		t.Errorf("no periodic status line:\n%s", out)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	config := newTestConfig()
	config.Replay.Autoplay = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := run(ctx, config, log.Discard(), strings.NewReader("status\n"), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/countup/cmd/countup/internal/config"
	"github.com/go-drift/countup/pkg/counter"
)

func resolve(t *testing.T, specs ...config.CounterSpec) *config.Config {
	t.Helper()
	cfg, err := config.Resolve(&config.Config{Counters: specs})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return cfg
}

func decodeTrace(t *testing.T, out string) []traceRecord {
	t.Helper()
	var records []traceRecord
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var rec traceRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("Unmarshal(%q) error = %v", line, err)
		}
		records = append(records, rec)
	}
	return records
}

func TestRunTrace(t *testing.T) {
	cfg := resolve(t, config.CounterSpec{ID: "visits", End: counter.Float(100), Duration: "1s"})

	var buf bytes.Buffer
	if err := runTrace(&buf, cfg, traceOptions{Interval: 500 * time.Millisecond, Limit: time.Minute}); err != nil {
		t.Fatalf("runTrace() error = %v", err)
	}

	want := []traceRecord{
		{Counter: "visits", T: 0, Event: counter.EventStart},
		{Counter: "visits", T: 0, Event: counter.EventUpdate, Value: 0, Progress: 0, Text: "0"},
		{Counter: "visits", T: 500, Event: counter.EventUpdate, Value: 50, Progress: 0.5, Text: "50"},
		{Counter: "visits", T: 1000, Event: counter.EventUpdate, Value: 100, Progress: 1, Text: "100"},
		{Counter: "visits", T: 1000, Event: counter.EventComplete, Value: 100, Progress: 1, Text: "100"},
	}
	if diff := cmp.Diff(want, decodeTrace(t, buf.String())); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTraceStartsLazyAndIdleCounters(t *testing.T) {
	off := false
	cfg := resolve(t,
		config.CounterSpec{ID: "lazy", End: counter.Float(3), Duration: "100ms", Lazy: true, PlayOnce: true},
		config.CounterSpec{ID: "idle", End: counter.Float(3), Duration: "100ms", Autostart: &off},
	)

	var buf bytes.Buffer
	if err := runTrace(&buf, cfg, traceOptions{Interval: 50 * time.Millisecond, Limit: time.Second}); err != nil {
		t.Fatalf("runTrace() error = %v", err)
	}

	completed := make(map[string]float64)
	for _, rec := range decodeTrace(t, buf.String()) {
		if rec.Event == counter.EventComplete {
			completed[rec.Counter] = rec.Value
		}
	}
	if diff := cmp.Diff(map[string]float64{"lazy": 3, "idle": 3}, completed); diff != "" {
		t.Errorf("completed mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTraceLimit(t *testing.T) {
	cfg := resolve(t, config.CounterSpec{ID: "slow", End: counter.Float(1), Duration: "1h"})

	var buf bytes.Buffer
	err := runTrace(&buf, cfg, traceOptions{Interval: time.Second, Limit: 10 * time.Second})
	if err == nil || !strings.Contains(err.Error(), "still running") {
		t.Fatalf("runTrace() error = %v, want still running", err)
	}
}

func TestRunTraceInvalidInterval(t *testing.T) {
	cfg := resolve(t, config.CounterSpec{ID: "x", End: counter.Float(1)})
	if err := runTrace(&bytes.Buffer{}, cfg, traceOptions{}); err == nil {
		t.Fatal("expected error for zero interval")
	}
}

func TestRunTraceInvalidEasing(t *testing.T) {
	cfg := resolve(t, config.CounterSpec{ID: "x", End: counter.Float(1), Easing: "bouncy"})
	err := runTrace(&bytes.Buffer{}, cfg, traceOptions{Interval: time.Millisecond, Limit: time.Second})
	if err == nil || !strings.Contains(err.Error(), `counter "x"`) {
		t.Fatalf("runTrace() error = %v, want counter x error", err)
	}
}

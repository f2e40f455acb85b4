package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/go-drift/countup/pkg/animation"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "countup "+Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestEasingsCommand(t *testing.T) {
	out, err := execute(t, "easings")
	if err != nil {
		t.Fatalf("easings error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(animation.EasingNames()) {
		t.Fatalf("got %d lines, want %d", len(lines), len(animation.EasingNames()))
	}
	if !strings.Contains(out, "linear") || !strings.Contains(out, "easeOutExpo") {
		t.Errorf("easings output missing names:\n%s", out)
	}
}

func TestTraceCommandSingleCounter(t *testing.T) {
	out, err := execute(t, "trace", "--log-file", filepath.Join(t.TempDir(), "countup.log"),
		"--end", "10", "--duration", "100ms", "--interval", "50ms", "--prefix", "$")
	if err != nil {
		t.Fatalf("trace error = %v", err)
	}
	records := decodeTrace(t, out)
	last := records[len(records)-1]
	if last.Counter != "counter1" || last.Event != "complete" || last.Text != "$10" {
		t.Errorf("last record = %+v", last)
	}
}

func TestTraceCommandConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := "counters:\n  - title: Signups\n    end: 4\n    duration: 40ms\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "trace", "--config", path, "--interval", "20ms")
	if err != nil {
		t.Fatalf("trace error = %v", err)
	}
	if !strings.Contains(out, `"counter":"signups"`) {
		t.Errorf("trace output missing signups counter:\n%s", out)
	}
}

func TestLoadConfigWithoutCounters(t *testing.T) {
	t.Chdir(t.TempDir())

	var opts counterFlags
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.AddFlags(f)
	if _, err := loadConfig(&GlobalOptions{}, &opts, f); err == nil {
		t.Fatal("expected error without --end or a config file")
	}
}

func TestCounterFlagsSpec(t *testing.T) {
	var opts counterFlags
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.AddFlags(f)
	if err := f.Parse([]string{"--end", "50", "--step", "0.5", "--no-autostart", "--bezier", "0.4,0,0.2,1"}); err != nil {
		t.Fatal(err)
	}

	spec := opts.spec(f)
	if spec.End == nil || *spec.End != 50 {
		t.Errorf("End = %v, want 50", spec.End)
	}
	if spec.Step == nil || *spec.Step != 0.5 {
		t.Errorf("Step = %v, want 0.5", spec.Step)
	}
	if spec.Start != nil || spec.Decimals != nil || spec.Duration != "" {
		t.Errorf("unset flags should stay empty: %+v", spec)
	}
	if spec.Autostart == nil || *spec.Autostart {
		t.Errorf("Autostart = %v, want false", spec.Autostart)
	}
	if len(spec.Bezier) != 4 {
		t.Errorf("Bezier = %v, want 4 values", spec.Bezier)
	}
}

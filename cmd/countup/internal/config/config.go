// Package config loads the optional countup.yaml board description.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/countup/pkg/animation"
	"github.com/go-drift/countup/pkg/counter"
)

// FileName is the config file looked up in the working directory.
const FileName = "countup.yaml"

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// Config represents countup.yaml.
type Config struct {
	Title    string        `yaml:"title,omitempty"`
	FPS      int           `yaml:"fps,omitempty"`
	Counters []CounterSpec `yaml:"counters"`
}

// CounterSpec describes one board row and its counter. Pointer fields are
// optional; nil means "use the counter default".
type CounterSpec struct {
	ID        string    `yaml:"id,omitempty"`
	Title     string    `yaml:"title,omitempty"`
	Start     *float64  `yaml:"start,omitempty"`
	End       *float64  `yaml:"end"`
	Duration  string    `yaml:"duration,omitempty"`
	Step      *float64  `yaml:"step,omitempty"`
	Easing    string    `yaml:"easing,omitempty"`
	Bezier    []float64 `yaml:"bezier,omitempty"`
	Decimals  *int      `yaml:"decimals,omitempty"`
	Prefix    string    `yaml:"prefix,omitempty"`
	Suffix    string    `yaml:"suffix,omitempty"`
	Locale    string    `yaml:"locale,omitempty"`
	Lazy      bool      `yaml:"lazy,omitempty"`
	PlayOnce  bool      `yaml:"play_once,omitempty"`
	Autostart *bool     `yaml:"autostart,omitempty"`
}

// Load reads and resolves the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return Parse(data)
}

// LoadOptional reads countup.yaml from dir if present. A missing file
// yields an empty config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return Resolve(&Config{})
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML and resolves defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", FileName)
	}
	return Resolve(&cfg)
}

// Resolve fills defaults in place and validates ids.
func Resolve(cfg *Config) (*Config, error) {
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = "countup"
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}

	seen := make(map[string]bool)
	for i := range cfg.Counters {
		spec := &cfg.Counters[i]
		spec.Title = strings.TrimSpace(spec.Title)
		if spec.ID == "" {
			spec.ID = defaultID(spec.Title, i)
		}
		if spec.Title == "" {
			spec.Title = spec.ID
		}
		if err := validateID(spec.ID); err != nil {
			return nil, err
		}
		if seen[spec.ID] {
			return nil, errors.Errorf("counters[%d]: duplicate id %q", i, spec.ID)
		}
		seen[spec.ID] = true
	}
	return cfg, nil
}

// FrameInterval returns the time between frames for the configured FPS.
func (c *Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// CounterConfig converts the spec to a counter.Config.
func (s CounterSpec) CounterConfig() (counter.Config, error) {
	cfg := counter.DefaultConfig()
	if s.Start != nil {
		cfg.Start = *s.Start
	}
	cfg.End = s.End
	if s.Duration != "" {
		d, err := time.ParseDuration(s.Duration)
		if err != nil {
			return cfg, errors.Wrapf(err, "counter %q: invalid duration", s.ID)
		}
		cfg.Duration = d
	}
	if s.Step != nil {
		cfg.Step = *s.Step
	}
	if s.Easing != "" {
		cfg.Easing = s.Easing
	}
	if len(s.Bezier) > 0 {
		if len(s.Bezier) != 4 {
			return cfg, errors.Errorf("counter %q: bezier needs 4 control values, got %d", s.ID, len(s.Bezier))
		}
		cfg.Curve = animation.CubicBezier(s.Bezier[0], s.Bezier[1], s.Bezier[2], s.Bezier[3])
	}
	f, err := s.Formatter()
	if err != nil {
		return cfg, err
	}
	cfg.Formatter = f
	cfg.Lazy = s.Lazy
	cfg.PlayOnce = s.PlayOnce
	if s.Autostart != nil {
		cfg.Autostart = *s.Autostart
	}
	return cfg, nil
}

// Formatter builds the display formatter from the decimals, locale and
// affix settings.
func (s CounterSpec) Formatter() (counter.Formatter, error) {
	decimals := 0
	if s.Decimals != nil {
		decimals = *s.Decimals
	}

	var f counter.Formatter
	switch {
	case s.Locale != "":
		tag, err := language.Parse(s.Locale)
		if err != nil {
			return nil, errors.Wrapf(err, "counter %q: invalid locale", s.ID)
		}
		f = counter.LocaleFormatter(tag, decimals)
	case s.Decimals != nil:
		f = counter.FixedFormatter(decimals)
	default:
		f = counter.PlainFormatter
	}
	if s.Prefix != "" || s.Suffix != "" {
		f = counter.Affix(s.Prefix, s.Suffix, f)
	}
	return f, nil
}

func defaultID(title string, index int) string {
	id := sanitizeSegment(title)
	if id == "" {
		return "counter" + strconv.Itoa(index+1)
	}
	return id
}

// sanitizeSegment lowercases title and keeps letters, digits and dashes.
func sanitizeSegment(title string) string {
	var out []rune
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			if len(out) > 0 && out[len(out)-1] != '-' {
				out = append(out, '-')
			}
		}
	}
	return strings.TrimRight(string(out), "-")
}

func validateID(id string) error {
	if id == "" {
		return errors.New("counter id cannot be empty")
	}
	for _, r := range id {
		if !(r == '-' || r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.Errorf("counter id contains invalid character %q in %q", r, id)
		}
	}
	return nil
}

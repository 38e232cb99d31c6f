// Package config holds the liveness analyzer configuration.
//
// Configuration comes from a YAML file and from analyzer flags; flags set on
// the command line win over the file:
//
//	# liveness.yaml
//	target: test
//	order: postorder
//	policy: classic
//	write: true
//	output_dir: out
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mpyw/liveness/internal/dataflow"
)

// DefaultTarget is the procedure analyzed when none is configured.
const DefaultTarget = "test"

// ErrNoTarget is returned when the configuration names no procedure.
var ErrNoTarget = errors.New("no target function configured")

// Config configures one analyzer instance.
type Config struct {
	Target    string          `yaml:"target"`
	Order     dataflow.Order  `yaml:"order"`
	Policy    dataflow.Policy `yaml:"policy"`
	Heap      bool            `yaml:"heap"`
	Report    bool            `yaml:"report"`
	Write     bool            `yaml:"write"`
	OutputDir string          `yaml:"output_dir"`
	Trace     bool            `yaml:"trace"`
	Diagnose  bool            `yaml:"diagnose"`

	// Stderr receives the report and trace narration. Nil means os.Stderr.
	Stderr io.Writer `yaml:"-"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		Target:   DefaultTarget,
		Order:    dataflow.OrderReverse,
		Policy:   dataflow.PolicyClassic,
		Report:   true,
		Write:    true,
		Diagnose: true,
	}
}

// Normalize replaces zero enumerations with their defaults.
func (c *Config) Normalize() {
	if c.Order == 0 {
		c.Order = dataflow.OrderReverse
	}
	if c.Policy == 0 {
		c.Policy = dataflow.PolicyClassic
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if c.Target == "" {
		return ErrNoTarget
	}
	if !c.Order.Valid() {
		return fmt.Errorf("invalid sweep order %s", c.Order)
	}
	if !c.Policy.Valid() {
		return fmt.Errorf("invalid classification policy %s", c.Policy)
	}
	return nil
}

// Writer returns the destination of human-readable output.
func (c Config) Writer() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}
	return c.Stderr
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// RegisterFlags binds every field of c to a flag in fs. Current values of c
// become the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	c.Normalize()
	fs.StringVar(&c.Target, "func", c.Target, "name of the function to analyze")
	fs.TextVar(&c.Order, "order", c.Order, "sweep order: reverse, program or postorder")
	fs.TextVar(&c.Policy, "policy", c.Policy, "classification policy: classic or uniform")
	fs.BoolVar(&c.Heap, "heap", c.Heap, "also track heap-allocated locals")
	fs.BoolVar(&c.Report, "report", c.Report, "print the report to stderr")
	fs.BoolVar(&c.Write, "write", c.Write, "write the report to <source>.out")
	fs.StringVar(&c.OutputDir, "outdir", c.OutputDir, "directory for .out files (default: beside the source)")
	fs.BoolVar(&c.Trace, "trace", c.Trace, "narrate every classified instruction")
	fs.BoolVar(&c.Diagnose, "diagnose", c.Diagnose, "emit one diagnostic per analyzed function")
}

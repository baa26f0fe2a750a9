// Package scan loads rule files and runs the ambiguity analysis over
// batches of patterns.
package scan

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"redoscan/analysis"
	"redoscan/regex"
)

// DefaultMaxStates bounds exploration of a single pattern. A pattern
// blowing past it is itself a finding: the state count is the quantity
// the analysis measures.
const DefaultMaxStates = 10000

// Rule is one named pattern to check.
type Rule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// Config is a scan rule file.
//
//	rules:
//	  - name: quoted-string
//	    pattern: '"(\\.|[^"])*"'
//	max_states: 5000
type Config struct {
	Rules     []Rule `yaml:"rules"`
	MaxStates int    `yaml:"max_states"`
}

// Load reads and validates a YAML rule file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("rules %s: no rules defined", path)
	}
	for i, r := range cfg.Rules {
		if r.Pattern == "" {
			return nil, fmt.Errorf("rules %s: rule %d (%q) has no pattern", path, i, r.Name)
		}
	}
	if cfg.MaxStates == 0 {
		cfg.MaxStates = DefaultMaxStates
	}
	return &cfg, nil
}

// Finding is the analysis outcome for one rule. Err is set when the
// pattern failed to parse or exploration hit the state cap.
type Finding struct {
	Rule   Rule
	Report analysis.Report
	Err    error
}

// Check parses, explores, and classifies a single pattern. maxStates of
// zero means unbounded exploration.
func Check(pattern string, maxStates int) (analysis.Report, error) {
	tree, err := regex.Parse(pattern)
	if err != nil {
		return analysis.Report{}, err
	}
	ss, err := regex.ExploreBounded(tree, maxStates)
	if err != nil {
		return analysis.Report{States: len(ss.States)}, err
	}
	return analysis.Classify(ss), nil
}

// Runner scans every rule of a config.
type Runner struct {
	Log *slog.Logger
}

// Run checks each rule in order and returns one finding per rule.
func (r *Runner) Run(cfg *Config) []Finding {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	findings := make([]Finding, 0, len(cfg.Rules))
	for _, rule := range cfg.Rules {
		rep, err := Check(rule.Pattern, cfg.MaxStates)
		if err != nil {
			log.Warn("rule not analyzable",
				slog.String("rule", rule.Name),
				slog.String("error", err.Error()))
		} else {
			log.Debug("rule analyzed",
				slog.String("rule", rule.Name),
				slog.String("degree", rep.Degree.String()),
				slog.Int("states", rep.States))
		}
		findings = append(findings, Finding{Rule: rule, Report: rep, Err: err})
	}
	return findings
}

// Package config is a named, tabular, introspectable registry of
// feature and warning toggles for the lexer and parser, narrowed from
// the teacher toolchain's backend-aware Feature/Warning table to the
// knobs meaningful for a front end with no backend.
package config

import "strings"

// Feature is a togglable lexer/parser behavior.
type Feature int

const (
	// FeatCEscapes enables C-style '\' escape sequences in string
	// literals.
	FeatCEscapes Feature = iota
	// FeatCComments enables '//' line comments in addition to '/* */'
	// block comments.
	FeatCComments
	// FeatAllowUninitialized permits a declaration without an
	// initializer (`int x;`).
	FeatAllowUninitialized
	// FeatPanicModeRecovery makes the parser skip ahead to the next ';'
	// or statement-starting keyword after a syntax error, instead of
	// past only the offending token. Either way parsing stops at that
	// first error.
	FeatPanicModeRecovery
	FeatCount
)

// Warning is a togglable diagnostic class.
type Warning int

const (
	WarnUnrecognizedEscape Warning = iota
	WarnOverflow
	WarnImplicitConversion
	WarnPedantic
	WarnCount
)

// Info names and documents one Feature or Warning entry.
type Info struct {
	Name        string
	Enabled     bool
	Description string
}

// Config is the feature/warning registry threaded through the lexer
// and parser.
type Config struct {
	Features   map[Feature]Info
	Warnings   map[Warning]Info
	FeatureMap map[string]Feature
	WarningMap map[string]Warning
}

// New returns a Config with the teacher-toolchain-style defaults: the
// permissive, C-like behaviors enabled, pedantic warnings off.
func New() *Config {
	cfg := &Config{
		Features:   make(map[Feature]Info),
		Warnings:   make(map[Warning]Info),
		FeatureMap: make(map[string]Feature),
		WarningMap: make(map[string]Warning),
	}

	features := map[Feature]Info{
		FeatCEscapes:            {"c-escapes", true, "Recognize C-style '\\' escapes in string literals."},
		FeatCComments:           {"c-comments", true, "Recognize '//' line comments."},
		FeatAllowUninitialized:  {"allow-uninitialized", true, "Allow declarations without an initializer."},
		FeatPanicModeRecovery:   {"panic-mode-recovery", false, "On a parse error, skip to the next ';' or statement keyword instead of past only the offending token."},
	}
	warnings := map[Warning]Info{
		WarnUnrecognizedEscape: {"unrecognized-escape", true, "Warn on an unrecognized escape sequence."},
		WarnOverflow:           {"overflow", true, "Warn when an integer literal overflows int64."},
		WarnImplicitConversion: {"implicit-conversion", true, "Warn when an int/float assignment narrows or widens implicitly."},
		WarnPedantic:           {"pedantic", false, "Issue all warnings demanded by strict conformance."},
	}

	cfg.Features, cfg.Warnings = features, warnings
	for ft, info := range features {
		cfg.FeatureMap[info.Name] = ft
	}
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}
	return cfg
}

// SetFeature enables or disables a feature.
func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

// IsFeatureEnabled reports whether a feature is enabled.
func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

// SetWarning enables or disables a warning.
func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

// IsWarningEnabled reports whether a warning is enabled.
func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

// ApplyFlag parses one "-Fname"/"-Fno-name"/"-Wname"/"-Wno-name" style
// flag, the same shorthand the teacher toolchain's CLI accepts.
func (c *Config) ApplyFlag(flag string) {
	trimmed := strings.TrimPrefix(flag, "-")
	isNo := strings.HasPrefix(trimmed, "Wno-") || strings.HasPrefix(trimmed, "Fno-")
	enable := !isNo

	var name string
	var isWarning bool
	switch {
	case strings.HasPrefix(trimmed, "W"):
		name = strings.TrimPrefix(trimmed, "W")
		if isNo {
			name = strings.TrimPrefix(name, "no-")
		}
		isWarning = true
	case strings.HasPrefix(trimmed, "F"):
		name = strings.TrimPrefix(trimmed, "F")
		if isNo {
			name = strings.TrimPrefix(name, "no-")
		}
	default:
		return
	}

	if name == "all" && isWarning {
		for i := Warning(0); i < WarnCount; i++ {
			if i != WarnPedantic {
				c.SetWarning(i, enable)
			}
		}
		return
	}

	if isWarning {
		if w, ok := c.WarningMap[name]; ok {
			c.SetWarning(w, enable)
		}
	} else if f, ok := c.FeatureMap[name]; ok {
		c.SetFeature(f, enable)
	}
}

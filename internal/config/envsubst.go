package config

import (
	"os"
	"regexp"
)

// envVarPattern matches ${VAR} or ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// LookupFunc resolves a variable name to a value. The second return value
// reports whether the variable is set.
type LookupFunc func(name string) (string, bool)

// Expand replaces variable references in the input string using lookup.
// Supports two formats:
//   - ${VAR} - replaced with the value of VAR, or empty string if not set
//   - ${VAR:-default} - replaced with VAR's value, or "default" if not set
func Expand(input string, lookup LookupFunc) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		defaultVal := ""
		if len(submatches) >= 3 {
			defaultVal = submatches[2]
		}

		if val, ok := lookup(varName); ok {
			return val
		}
		return defaultVal
	})
}

// ExpandEnv expands variable references from the process environment.
func ExpandEnv(input string) string {
	return Expand(input, os.LookupEnv)
}

// Overlay builds a LookupFunc that consults vars first and falls back to
// the process environment. Stage argument expansion uses this so the run
// context stays the single source of truth for computed paths.
func Overlay(vars map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		if val, ok := vars[name]; ok {
			return val, true
		}
		return os.LookupEnv(name)
	}
}

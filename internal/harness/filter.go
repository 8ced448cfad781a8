package harness

import (
	"fmt"
	"path"
)

// Filter returns the scenarios whose name matches the glob pattern, in their
// original order. An empty pattern matches everything.
func Filter(scenarios []Scenario, pattern string) ([]Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", pattern, err)
	}
	var out []Scenario
	for _, s := range scenarios {
		if ok, _ := path.Match(pattern, s.Name); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// Lookup finds a scenario by exact name.
func Lookup(scenarios []Scenario, name string) (Scenario, bool) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

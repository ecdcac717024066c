// Package compass decides which launch sites are in scope for a dataset.
// A Scope holds sets of include and exclude regular expressions that are matched
// against launch-site names while a dataset is loaded.
package compass

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is a single compiled site pattern.
type Rule struct {
	Pattern *regexp.Regexp // Compiled regular expression pattern
}

// Scope represents the inclusion/exclusion rules and default behavior for filtering
// launch sites.
type Scope struct {
	IncludeRules map[string]Rule // Map of inclusion rules keyed by pattern
	ExcludeRules map[string]Rule // Map of exclusion rules keyed by pattern
	DefaultAllow bool            // Default behavior for sites not matching any rule
}

// NewScope creates a new Scope with the specified default behavior.
//
// Parameters:
//   - defaultAllow: Whether to allow sites that don't match any rules
//
// Returns:
//   - *Scope: New scope instance with empty rule sets
func NewScope(defaultAllow bool) *Scope {
	return &Scope{
		IncludeRules: make(map[string]Rule),
		ExcludeRules: make(map[string]Rule),
		DefaultAllow: defaultAllow,
	}
}

// FromPatterns builds a scope from include and exclude pattern lists.
// With no include patterns every site not excluded is allowed; with include patterns
// only matching sites are.
func FromPatterns(include, exclude []string) (*Scope, error) {
	scope := NewScope(len(include) == 0)
	for _, pattern := range include {
		if err := scope.AddRule(pattern, false); err != nil {
			return nil, fmt.Errorf("adding include rule %q : %w", pattern, err)
		}
	}
	for _, pattern := range exclude {
		if err := scope.AddRule(pattern, true); err != nil {
			return nil, fmt.Errorf("adding exclude rule %q : %w", pattern, err)
		}
	}
	return scope, nil
}

// Matches determines if a launch site is in scope.
func (s *Scope) Matches(site string) bool {
	// Check exclusion rules first
	for _, rule := range s.ExcludeRules {
		if rule.Pattern.MatchString(site) {
			return false
		}
	}

	for _, rule := range s.IncludeRules {
		if rule.Pattern.MatchString(site) {
			return true
		}
	}

	return s.DefaultAllow
}

// ClearRules clears all inclusion and exclusion rules from the scope
func (s *Scope) ClearRules() {
	s.IncludeRules = make(map[string]Rule)
	s.ExcludeRules = make(map[string]Rule)
}

// AddRule adds a rule to the scope. A leading "-" on the pattern is stripped.
func (s *Scope) AddRule(pattern string, exclude bool) error {
	trimmedPattern := strings.TrimPrefix(pattern, "-")
	compiled, err := regexp.Compile(trimmedPattern)
	if err != nil {
		return fmt.Errorf("invalid regex pattern: %w", err)
	}
	rule := Rule{Pattern: compiled}
	key := compiled.String()

	if exclude {
		if _, exists := s.ExcludeRules[key]; exists {
			return fmt.Errorf("rule already exists in exclude list")
		}
		s.ExcludeRules[key] = rule
	} else {
		if _, exists := s.IncludeRules[key]; exists {
			return fmt.Errorf("rule already exists in include list")
		}
		s.IncludeRules[key] = rule
	}

	return nil
}

// RemoveRule removes a rule from the scope
func (s *Scope) RemoveRule(pattern string, exclude bool) error {
	key := strings.TrimPrefix(pattern, "-")

	if exclude {
		if _, exists := s.ExcludeRules[key]; !exists {
			return fmt.Errorf("rule not found in exclude list")
		}
		delete(s.ExcludeRules, key)
	} else {
		if _, exists := s.IncludeRules[key]; !exists {
			return fmt.Errorf("rule not found in include list")
		}
		delete(s.IncludeRules, key)
	}

	return nil
}

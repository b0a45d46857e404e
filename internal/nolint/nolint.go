package nolint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sigopt/sigopt-tools/internal/pyast"
)

const (
	disableMarker = "sigoptlint: disable="
	enableMarker  = "sigoptlint: enable="
)

// ErrEnableUnsupported is returned for any "sigoptlint: enable=" directive.
// A disable lasts until the end of the file and cannot be undone.
var ErrEnableUnsupported = errors.New("re-enabling sigoptlint disables is not supported")

// Manager records, per rule name, the first line from which that rule is
// disabled. It is built once per file and read-only afterwards.
type Manager struct {
	disabled map[string]int
}

// ParseComments scans comment tokens for disable directives.
//
// A directive names one or more rules after the marker, separated by commas:
//
//	# sigoptlint: disable=AvoidDatetimeNow, SafeYield
//
// The first directive naming a rule fixes its line; later ones are ignored.
func ParseComments(comments []pyast.Comment) (*Manager, error) {
	m := &Manager{disabled: make(map[string]int)}
	for _, c := range comments {
		if strings.Contains(c.Text, enableMarker) {
			return nil, fmt.Errorf("line %d: %w", c.Line, ErrEnableUnsupported)
		}
		i := strings.Index(c.Text, disableMarker)
		if i < 0 {
			continue
		}
		for _, rule := range parseRuleNames(c.Text[i+len(disableMarker):]) {
			if _, exists := m.disabled[rule]; !exists {
				m.disabled[rule] = c.Line
			}
		}
	}
	return m, nil
}

// parseRuleNames splits a comma separated rule list.
func parseRuleNames(text string) []string {
	var rules []string
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rules = append(rules, rule)
		}
	}
	return rules
}

// disabledFrom returns the line from which rule is disabled.
func (m *Manager) disabledFrom(rule string) (int, bool) {
	if m == nil {
		return 0, false
	}
	line, ok := m.disabled[rule]
	return line, ok
}

// IsNolint reports whether a finding on line is suppressed for a rule known
// by any of names. Line 0 means the position is unknown and is never
// suppressed.
func (m *Manager) IsNolint(line int, names ...string) bool {
	if m == nil || line <= 0 {
		return false
	}
	for _, name := range names {
		if from, ok := m.disabled[name]; ok && from <= line {
			return true
		}
	}
	return false
}

// Len returns the number of rules with a disable directive.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.disabled)
}

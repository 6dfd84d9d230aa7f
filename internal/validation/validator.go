package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// Violations collects every failed assertion of a validation pass, keyed by
// field name, so a caller can report all problems at once instead of fixing
// them one by one.
type Violations map[string][]string

func (v Violations) Add(field, message string) {
	v[field] = append(v[field], message)
}

func (v Violations) Empty() bool {
	return len(v) == 0
}

func (v Violations) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(strings.Join(v[field], ", "))
	}
	return b.String()
}

// Validator runs assertions over an entity without short-circuiting.
// Each assertion reports its own outcome so dependent checks can be
// skipped, and Err gathers the full set at the end.
type Validator struct {
	violations Violations
}

func New() *Validator {
	return &Validator{violations: Violations{}}
}

// Check records a violation when ok is false. Returns ok for chaining
// dependent assertions.
func (v *Validator) Check(ok bool, field, message string) bool {
	if !ok {
		v.violations.Add(field, message)
	}
	return ok
}

// Require asserts that a value is present (non-blank).
func (v *Validator) Require(field, value string) bool {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Pattern asserts that a value matches a regular expression. regexp2 is
// used so patterns with lookarounds work as well.
func (v *Validator) Pattern(field, value, pattern, message string) bool {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return v.Check(false, field, fmt.Sprintf("invalid pattern %q", pattern))
	}

	ok, err := re.MatchString(value)
	return v.Check(err == nil && ok, field, message)
}

// Digits asserts that a value is numeric with exactly count digits.
func (v *Validator) Digits(field, value string, count int) bool {
	pattern := fmt.Sprintf(`^[0-9]{%d}$`, count)
	return v.Pattern(field, value, pattern, fmt.Sprintf("must be exactly %d digits", count))
}

// Err returns the accumulated violations, or nil when everything passed.
func (v *Validator) Err() error {
	if v.violations.Empty() {
		return nil
	}
	return v.violations
}

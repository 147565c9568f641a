package api

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern is deliberately loose: one @, no whitespace, a dot in the
// domain part. Stricter address verification belongs to a mail round trip,
// not a signup form.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Predicate evaluates a single field value. present is false when the field
// was entirely absent from the payload.
type Predicate func(value any, present bool) bool

// Rule binds one field to a predicate and the message surfaced on failure.
// Optional rules pass automatically when the field is absent.
type Rule struct {
	Field    string
	Message  string
	Optional bool
	Check    Predicate
}

// RuleSet is an ordered sequence of validation rules for one route. Rule
// sets are built at startup and read-only at request time.
type RuleSet []Rule

// Validate evaluates every rule against the decoded payload in declaration
// order. All rules run; only the first failure is surfaced, as a
// ValidationError carrying that rule's message. Returns nil when all rules
// pass.
func (rs RuleSet) Validate(payload map[string]any) *Error {
	var failures []string
	for _, r := range rs {
		value, present := payload[r.Field]
		if r.Optional && !present {
			continue
		}
		if !r.Check(value, present) {
			failures = append(failures, r.Message)
		}
	}
	if len(failures) > 0 {
		return NewValidationError(failures[0])
	}
	return nil
}

// Required builds a rule that fails when the field is absent or not a
// non-empty string (surrounding whitespace does not count as content).
func Required(field, message string) Rule {
	return Rule{Field: field, Message: message, Check: nonEmptyString}
}

// OptionalNonEmpty builds a rule that is skipped when the field is absent
// but fails when it is present and empty.
func OptionalNonEmpty(field, message string) Rule {
	return Rule{Field: field, Message: message, Optional: true, Check: nonEmptyString}
}

// Email builds a rule that fails unless the field is a string shaped like
// an email address.
func Email(field, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(value any, present bool) bool {
		s, ok := stringValue(value, present)
		return ok && emailPattern.MatchString(s)
	}}
}

// MinLength builds a rule that fails unless the field is a string of at
// least n bytes.
func MinLength(field string, n int, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(value any, present bool) bool {
		s, ok := stringValue(value, present)
		return ok && len(s) >= n
	}}
}

// MaxLength builds a rule that fails unless the field is a string of at
// most n bytes.
func MaxLength(field string, n int, message string) Rule {
	return Rule{Field: field, Message: message, Check: func(value any, present bool) bool {
		s, ok := stringValue(value, present)
		return ok && len(s) <= n
	}}
}

// OneOf builds an optional rule that fails when the field is present but
// not a member of the allowed set.
func OneOf(field string, allowed []string, message string) Rule {
	return Rule{Field: field, Message: message, Optional: true, Check: func(value any, present bool) bool {
		s, ok := stringValue(value, present)
		if !ok {
			return false
		}
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}}
}

// AsOptional returns a copy of the rule that is skipped when the field is
// absent from the payload.
func AsOptional(r Rule) Rule {
	r.Optional = true
	return r
}

func nonEmptyString(value any, present bool) bool {
	s, ok := stringValue(value, present)
	return ok && strings.TrimSpace(s) != ""
}

func stringValue(value any, present bool) (string, bool) {
	if !present {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// String renders the rule set for debugging and startup logs.
func (rs RuleSet) String() string {
	fields := make([]string, len(rs))
	for i, r := range rs {
		if r.Optional {
			fields[i] = fmt.Sprintf("%s?", r.Field)
		} else {
			fields[i] = r.Field
		}
	}
	return strings.Join(fields, ",")
}

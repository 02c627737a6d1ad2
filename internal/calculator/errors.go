package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rule identifies the validation rule a resolver input violated.
type Rule string

const (
	// RuleNoParticipants means the participant list was empty.
	RuleNoParticipants Rule = "no_participants"
	// RuleNonPositiveTotal means the total amount was zero or negative.
	RuleNonPositiveTotal Rule = "non_positive_total"
	// RuleDuplicateParticipant means a participant ID appeared more than once.
	RuleDuplicateParticipant Rule = "duplicate_participant"
	// RuleValueRequired means a participant was missing the per-policy value.
	RuleValueRequired Rule = "value_required"
	// RuleValueOutOfRange means a per-participant value was outside its
	// allowed range (negative exact amount, percentage outside [0,100]).
	RuleValueOutOfRange Rule = "value_out_of_range"
	// RuleSumMismatch means the participant values do not add up to the
	// expected total (exact split) or to 100 (percentage split).
	RuleSumMismatch Rule = "sum_mismatch"
	// RuleUnknownPolicy means the split policy is not one of the known kinds.
	RuleUnknownPolicy Rule = "unknown_policy"
)

// ValidationError reports a resolver precondition violation. The message is
// human-readable and safe to surface directly to end users; Expected and
// Actual are populated for sum mismatches so callers can render both sides.
type ValidationError struct {
	Rule     Rule
	Field    string
	Message  string
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

// Error returns the formatted validation error string.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(rule Rule, field, message string) *ValidationError {
	return &ValidationError{Rule: rule, Field: field, Message: message}
}

func newSumMismatchError(field string, expected, actual decimal.Decimal) *ValidationError {
	return &ValidationError{
		Rule:     RuleSumMismatch,
		Field:    field,
		Message:  fmt.Sprintf("values sum to %s, expected %s", actual, expected),
		Expected: expected,
		Actual:   actual,
	}
}

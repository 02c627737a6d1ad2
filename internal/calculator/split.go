// Package calculator implements the ledger arithmetic for expense sharing:
// resolving an expense total into exact per-person shares, and collapsing net
// balances into a short list of settling transfers.
//
// Both entry points are pure functions over their inputs. They perform no
// I/O, hold no state between calls, and are safe to invoke concurrently.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/money"
)

// SplitPolicy determines how an expense total is divided among participants.
type SplitPolicy string

const (
	// SplitEqual divides the total evenly, remainder to the first participant.
	SplitEqual SplitPolicy = "EQUAL"
	// SplitExact uses the exact amount each participant supplies.
	SplitExact SplitPolicy = "EXACT"
	// SplitPercentage divides the total by supplied percentages.
	SplitPercentage SplitPolicy = "PERCENTAGE"
)

// ParticipantInput is one participant's entry in a split request. Value is
// ignored for SplitEqual, an exact amount for SplitExact, and a percentage in
// [0,100] for SplitPercentage.
type ParticipantInput struct {
	ParticipantID string
	Value         *decimal.Decimal
}

// ResolvedShare is one participant's computed share of an expense total.
type ResolvedShare struct {
	ParticipantID string
	Amount        money.Money
}

var (
	oneHundred = decimal.NewFromInt(100)

	// sumTolerance absorbs upstream floating-point noise in user-supplied
	// exact amounts and percentages.
	sumTolerance = decimal.RequireFromString("0.01")
)

// Resolve converts a total amount, a split policy and participant inputs into
// per-person shares that sum exactly to the total. Participant order is
// preserved in the output; remainders from round-down division always land on
// the first participant.
//
// Resolution is all-or-nothing: any precondition violation returns a
// *ValidationError before any share is computed.
func Resolve(total money.Money, policy SplitPolicy, participants []ParticipantInput) ([]ResolvedShare, error) {
	if len(participants) == 0 {
		return nil, newValidationError(RuleNoParticipants, "participants", "at least one participant is required")
	}
	if !total.IsPositive() {
		return nil, newValidationError(RuleNonPositiveTotal, "total", "total must be greater than zero")
	}

	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if _, dup := seen[p.ParticipantID]; dup {
			return nil, newValidationError(RuleDuplicateParticipant, "participants",
				fmt.Sprintf("participant %q appears more than once", p.ParticipantID))
		}
		seen[p.ParticipantID] = struct{}{}
	}

	var (
		shares []ResolvedShare
		err    error
	)
	switch policy {
	case SplitEqual:
		shares = resolveEqual(total, participants)
	case SplitExact:
		shares, err = resolveExact(total, participants)
	case SplitPercentage:
		shares, err = resolvePercentage(total, participants)
	default:
		return nil, newValidationError(RuleUnknownPolicy, "policy",
			fmt.Sprintf("unknown split policy %q", policy))
	}
	if err != nil {
		return nil, err
	}

	// The sum invariant is checked, not assumed. Equal and percentage splits
	// hold it by construction; exact splits can still miss the total by a
	// cent when supplied values carry sub-cent noise inside the tolerance.
	var sum money.Money
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	if !sum.Equal(total) {
		return nil, newSumMismatchError("total", total.Decimal(), sum.Decimal())
	}

	return shares, nil
}

// resolveEqual gives everyone floor(total/n) and the first participant the
// remainder, at most one cent short per participant.
func resolveEqual(total money.Money, participants []ParticipantInput) []ResolvedShare {
	n := int64(len(participants))
	base := total.DivFloor(n)
	remainder := total.Sub(base.MulInt(n))

	shares := make([]ResolvedShare, len(participants))
	for i, p := range participants {
		shares[i] = ResolvedShare{ParticipantID: p.ParticipantID, Amount: base}
	}
	shares[0].Amount = shares[0].Amount.Add(remainder)
	return shares
}

func resolveExact(total money.Money, participants []ParticipantInput) ([]ResolvedShare, error) {
	sum := decimal.Zero
	for _, p := range participants {
		if p.Value == nil {
			return nil, newValidationError(RuleValueRequired, "participants",
				fmt.Sprintf("participant %q is missing an exact amount", p.ParticipantID))
		}
		if p.Value.IsNegative() {
			return nil, newValidationError(RuleValueOutOfRange, "participants",
				fmt.Sprintf("participant %q has a negative amount %s", p.ParticipantID, p.Value))
		}
		sum = sum.Add(*p.Value)
	}

	if sum.Sub(total.Decimal()).Abs().GreaterThan(sumTolerance) {
		return nil, newSumMismatchError("participants", total.Decimal(), sum)
	}

	shares := make([]ResolvedShare, len(participants))
	for i, p := range participants {
		shares[i] = ResolvedShare{ParticipantID: p.ParticipantID, Amount: money.FromDecimal(*p.Value)}
	}
	return shares, nil
}

func resolvePercentage(total money.Money, participants []ParticipantInput) ([]ResolvedShare, error) {
	sum := decimal.Zero
	for _, p := range participants {
		if p.Value == nil {
			return nil, newValidationError(RuleValueRequired, "participants",
				fmt.Sprintf("participant %q is missing a percentage", p.ParticipantID))
		}
		if p.Value.IsNegative() || p.Value.GreaterThan(oneHundred) {
			return nil, newValidationError(RuleValueOutOfRange, "participants",
				fmt.Sprintf("participant %q has percentage %s outside [0,100]", p.ParticipantID, p.Value))
		}
		sum = sum.Add(*p.Value)
	}

	if sum.Sub(oneHundred).Abs().GreaterThan(sumTolerance) {
		return nil, newSumMismatchError("participants", oneHundred, sum)
	}

	shares := make([]ResolvedShare, len(participants))
	var allocated money.Money
	for i, p := range participants {
		amount := total.PercentFloor(*p.Value)
		shares[i] = ResolvedShare{ParticipantID: p.ParticipantID, Amount: amount}
		allocated = allocated.Add(amount)
	}

	if remainder := total.Sub(allocated); remainder.IsPositive() {
		shares[0].Amount = shares[0].Amount.Add(remainder)
	}
	return shares, nil
}

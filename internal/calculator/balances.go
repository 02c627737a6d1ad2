package calculator

import (
	"sort"

	"github.com/splitledger/splitledger/internal/money"
)

// NetBalance is one participant's net position in a group. Positive means the
// participant is owed money, negative means they owe, zero means settled.
type NetBalance struct {
	ParticipantID string
	Balance       money.Money
}

// Transfer is a suggested payment that reduces net balances toward zero.
// Amount is always strictly positive.
type Transfer struct {
	FromParticipantID string
	ToParticipantID   string
	Amount            money.Money
}

// Simplify collapses a set of net balances into a short list of directed
// transfers using greedy largest-creditor/largest-debtor matching.
//
// Zero balances are dropped. The sorts are stable, so for a given input order
// the output is deterministic. Simplify never fails: if the balances do not
// sum to zero, the residual on the heavier side is simply left unmatched and
// the returned transfers settle everything that could be paired.
func Simplify(balances []NetBalance) []Transfer {
	type side struct {
		id     string
		amount money.Money
	}

	var creditors, debtors []side
	for _, b := range balances {
		switch {
		case b.Balance.IsPositive():
			creditors = append(creditors, side{id: b.ParticipantID, amount: b.Balance})
		case b.Balance.IsNegative():
			debtors = append(debtors, side{id: b.ParticipantID, amount: b.Balance.Abs()})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[j].amount.LessThan(creditors[i].amount)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[j].amount.LessThan(debtors[i].amount)
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount.Min(creditors[j].amount)
		if amount.IsPositive() {
			transfers = append(transfers, Transfer{
				FromParticipantID: debtors[i].id,
				ToParticipantID:   creditors[j].id,
				Amount:            amount,
			})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if !debtors[i].amount.IsPositive() {
			i++
		}
		if !creditors[j].amount.IsPositive() {
			j++
		}
	}

	return transfers
}

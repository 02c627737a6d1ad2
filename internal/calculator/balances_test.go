package calculator

import (
	"testing"

	"github.com/splitledger/splitledger/internal/money"
)

func balance(id, amount string) NetBalance {
	return NetBalance{ParticipantID: id, Balance: money.MustFromString(amount)}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		balances []NetBalance
		want     []Transfer
	}{
		{
			name:     "single pair",
			balances: []NetBalance{balance("A", "-50.00"), balance("B", "50.00")},
			want: []Transfer{
				{FromParticipantID: "A", ToParticipantID: "B", Amount: money.MustFromString("50.00")},
			},
		},
		{
			name:     "one debtor two creditors",
			balances: []NetBalance{balance("A", "-8.00"), balance("B", "5.00"), balance("C", "3.00")},
			want: []Transfer{
				{FromParticipantID: "A", ToParticipantID: "B", Amount: money.MustFromString("5.00")},
				{FromParticipantID: "A", ToParticipantID: "C", Amount: money.MustFromString("3.00")},
			},
		},
		{
			name: "zero balances ignored",
			balances: []NetBalance{
				balance("A", "-10.00"), balance("Z", "0.00"), balance("B", "10.00"),
			},
			want: []Transfer{
				{FromParticipantID: "A", ToParticipantID: "B", Amount: money.MustFromString("10.00")},
			},
		},
		{
			name:     "all settled",
			balances: []NetBalance{balance("A", "0.00"), balance("B", "0.00")},
			want:     nil,
		},
		{
			name:     "empty input",
			balances: nil,
			want:     nil,
		},
		{
			name: "largest matched first",
			balances: []NetBalance{
				balance("A", "10.00"), balance("B", "-3.00"),
				balance("C", "-17.00"), balance("D", "10.00"),
			},
			want: []Transfer{
				{FromParticipantID: "C", ToParticipantID: "A", Amount: money.MustFromString("10.00")},
				{FromParticipantID: "C", ToParticipantID: "D", Amount: money.MustFromString("7.00")},
				{FromParticipantID: "B", ToParticipantID: "D", Amount: money.MustFromString("3.00")},
			},
		},
		{
			name: "unbalanced input leaves residual unmatched",
			balances: []NetBalance{
				balance("A", "-10.00"), balance("B", "4.00"),
			},
			want: []Transfer{
				{FromParticipantID: "A", ToParticipantID: "B", Amount: money.MustFromString("4.00")},
			},
		},
		{
			name: "equal amounts keep input order",
			balances: []NetBalance{
				balance("A", "5.00"), balance("B", "5.00"),
				balance("C", "-5.00"), balance("D", "-5.00"),
			},
			want: []Transfer{
				{FromParticipantID: "C", ToParticipantID: "A", Amount: money.MustFromString("5.00")},
				{FromParticipantID: "D", ToParticipantID: "B", Amount: money.MustFromString("5.00")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simplify(tt.balances)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d transfers, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].FromParticipantID != tt.want[i].FromParticipantID ||
					got[i].ToParticipantID != tt.want[i].ToParticipantID ||
					!got[i].Amount.Equal(tt.want[i].Amount) {
					t.Errorf("transfer %d = %s->%s %s, want %s->%s %s", i,
						got[i].FromParticipantID, got[i].ToParticipantID, got[i].Amount,
						tt.want[i].FromParticipantID, tt.want[i].ToParticipantID, tt.want[i].Amount)
				}
				if !got[i].Amount.IsPositive() {
					t.Errorf("transfer %d has non-positive amount %s", i, got[i].Amount)
				}
			}
		})
	}
}

// For balanced inputs the transferred total must equal the positive side.
func TestSimplifyConservation(t *testing.T) {
	cases := [][]NetBalance{
		{balance("A", "-50.00"), balance("B", "50.00")},
		{balance("A", "-8.00"), balance("B", "5.00"), balance("C", "3.00")},
		{balance("A", "12.34"), balance("B", "-0.01"), balance("C", "-12.33")},
		{balance("A", "1.00"), balance("B", "2.00"), balance("C", "3.00"), balance("D", "-6.00")},
	}

	for _, balances := range cases {
		var positive money.Money
		for _, b := range balances {
			if b.Balance.IsPositive() {
				positive = positive.Add(b.Balance)
			}
		}

		var transferred money.Money
		for _, tr := range Simplify(balances) {
			transferred = transferred.Add(tr.Amount)
		}

		if !transferred.Equal(positive) {
			t.Errorf("Simplify(%+v): transferred %s, want %s", balances, transferred, positive)
		}
	}
}

func TestSimplifyDeterministic(t *testing.T) {
	balances := []NetBalance{
		balance("A", "10.00"), balance("B", "-3.00"),
		balance("C", "-17.00"), balance("D", "10.00"),
	}

	first := Simplify(balances)
	for i := 0; i < 10; i++ {
		again := Simplify(balances)
		if len(again) != len(first) {
			t.Fatalf("run %d emitted %d transfers, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j].FromParticipantID != first[j].FromParticipantID ||
				again[j].ToParticipantID != first[j].ToParticipantID ||
				!again[j].Amount.Equal(first[j].Amount) {
				t.Fatalf("run %d differs at transfer %d", i, j)
			}
		}
	}
}

func TestSimplifyDoesNotMutateInput(t *testing.T) {
	balances := []NetBalance{balance("A", "-8.00"), balance("B", "5.00"), balance("C", "3.00")}
	Simplify(balances)

	if !balances[0].Balance.Equal(money.MustFromString("-8.00")) ||
		!balances[1].Balance.Equal(money.MustFromString("5.00")) ||
		!balances[2].Balance.Equal(money.MustFromString("3.00")) {
		t.Errorf("input balances mutated: %+v", balances)
	}
}

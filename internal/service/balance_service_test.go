package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/storage"
)

func TestSettlementSuggestions(t *testing.T) {
	store := newTestStore(t)
	expenses := NewExpenseService(store)
	balances := NewBalanceService(store)
	group := newTestGroup(t, store, "Alice", "Bob", "Carol")

	// Alice fronts 90.00 split three ways.
	_, err := expenses.CreateExpense(context.Background(), CreateExpenseInput{
		GroupID:      group.ID,
		Total:        money.MustFromString("90.00"),
		PayerID:      "Alice",
		Policy:       calculator.SplitEqual,
		Participants: equalParticipants("Alice", "Bob", "Carol"),
	})
	require.NoError(t, err)

	transfers, err := balances.SettlementSuggestions(context.Background(), group.ID)
	require.NoError(t, err)
	require.Len(t, transfers, 2)

	var total money.Money
	for _, tr := range transfers {
		assert.Equal(t, "Alice", tr.ToParticipantID)
		assert.True(t, tr.Amount.IsPositive())
		total = total.Add(tr.Amount)
	}
	assert.Equal(t, "60.00", total.String())
}

func TestSettlementSuggestionsEmptyWhenSettled(t *testing.T) {
	store := newTestStore(t)
	balances := NewBalanceService(store)
	group := newTestGroup(t, store, "Alice", "Bob")

	transfers, err := balances.SettlementSuggestions(context.Background(), group.ID)
	require.NoError(t, err)
	assert.Empty(t, transfers)

	_, err = balances.SettlementSuggestions(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRecordSettlement(t *testing.T) {
	store := newTestStore(t)
	expenses := NewExpenseService(store)
	balances := NewBalanceService(store)
	group := newTestGroup(t, store, "Alice", "Bob")

	_, err := expenses.CreateExpense(context.Background(), CreateExpenseInput{
		GroupID:      group.ID,
		Total:        money.MustFromString("40.00"),
		PayerID:      "Alice",
		Policy:       calculator.SplitEqual,
		Participants: equalParticipants("Alice", "Bob"),
	})
	require.NoError(t, err)

	// Bob pays part of what he owes; partial amounts are fine.
	settlement, err := balances.RecordSettlement(context.Background(), RecordSettlementInput{
		GroupID:    group.ID,
		FromUserID: "Bob",
		ToUserID:   "Alice",
		Amount:     money.MustFromString("15.00"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, settlement.ID)

	assert.Equal(t, map[string]string{
		"Alice": "5.00",
		"Bob":   "-5.00",
	}, balanceMap(t, store, group.ID))

	listed, err := balances.ListSettlements(context.Background(), group.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestRecordSettlementValidation(t *testing.T) {
	store := newTestStore(t)
	balances := NewBalanceService(store)
	group := newTestGroup(t, store, "Alice", "Bob")

	cases := []RecordSettlementInput{
		{GroupID: group.ID, FromUserID: "Bob", ToUserID: "Alice", Amount: money.MustFromString("0.00")},
		{GroupID: group.ID, FromUserID: "Bob", ToUserID: "Alice", Amount: money.MustFromString("-1.00")},
		{GroupID: group.ID, FromUserID: "", ToUserID: "Alice", Amount: money.MustFromString("1.00")},
		{GroupID: group.ID, FromUserID: "Bob", ToUserID: "Bob", Amount: money.MustFromString("1.00")},
	}
	for _, in := range cases {
		_, err := balances.RecordSettlement(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}

	assert.Equal(t, map[string]string{
		"Alice": "0.00",
		"Bob":   "0.00",
	}, balanceMap(t, store, group.ID))
}

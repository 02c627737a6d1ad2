package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestGroup(t *testing.T, store *SQLiteStore, members ...string) *models.Group {
	t.Helper()
	group := &models.Group{Name: "Roommates", Members: members}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	return group
}

func balanceFor(t *testing.T, balances []models.MemberBalance, id string) money.Money {
	t.Helper()
	for _, b := range balances {
		if b.ParticipantID == id {
			return b.Balance
		}
	}
	t.Fatalf("no balance for %s", id)
	return money.Money{}
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := newTestGroup(t, store, "Alice", "Bob")
	assert.NotEmpty(t, group.ID)
	assert.NotZero(t, group.CreatedAt)

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, group.Name, got.Name)
	assert.Equal(t, []string{"Alice", "Bob"}, got.Members)

	_, err = store.GetGroup(ctx, "nonexistent")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.AddGroupMembers(ctx, group.ID, []string{"Carol", "Alice"}))
	got, err = store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, got.Members,
		"existing members keep their place, new ones append")

	balances, err := store.ListMemberBalances(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, balances, 3)
	for _, b := range balances {
		assert.True(t, b.Balance.IsZero(), "new members start at zero")
	}

	groups, err := store.ListGroups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestCreateExpenseAppliesLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := newTestGroup(t, store, "Alice", "Bob", "Carol")

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: "Groceries",
		Total:       money.MustFromString("100.00"),
		PayerID:     "Alice",
		Policy:      calculator.SplitEqual,
		Shares: []models.ExpenseShare{
			{ParticipantID: "Alice", Amount: money.MustFromString("33.34")},
			{ParticipantID: "Bob", Amount: money.MustFromString("33.33")},
			{ParticipantID: "Carol", Amount: money.MustFromString("33.33")},
		},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	assert.NotEmpty(t, expense.ID)

	balances, err := store.ListMemberBalances(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "66.66", balanceFor(t, balances, "Alice").String())
	assert.Equal(t, "-33.33", balanceFor(t, balances, "Bob").String())
	assert.Equal(t, "-33.33", balanceFor(t, balances, "Carol").String())

	// Double-entry: the group nets to zero.
	var sum money.Money
	for _, b := range balances {
		sum = sum.Add(b.Balance)
	}
	assert.True(t, sum.IsZero())

	got, err := store.GetExpense(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Description)
	assert.Equal(t, calculator.SplitEqual, got.Policy)
	assert.Equal(t, "100.00", got.Total.String())
	require.Len(t, got.Shares, 3)
	assert.Equal(t, "Alice", got.Shares[0].ParticipantID, "share order preserved")
	assert.Equal(t, "33.34", got.Shares[0].Amount.String())
}

func TestCreateExpenseUnknownMemberRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := newTestGroup(t, store, "Alice", "Bob")

	expense := &models.Expense{
		GroupID: group.ID,
		Total:   money.MustFromString("10.00"),
		PayerID: "Alice",
		Policy:  calculator.SplitEqual,
		Shares: []models.ExpenseShare{
			{ParticipantID: "Alice", Amount: money.MustFromString("5.00")},
			{ParticipantID: "Mallory", Amount: money.MustFromString("5.00")},
		},
	}
	err := store.CreateExpense(ctx, expense)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Nothing applied: no expense row, payer untouched.
	_, err = store.GetExpense(ctx, expense.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	balances, err := store.ListMemberBalances(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, balanceFor(t, balances, "Alice").IsZero())
}

func TestDeleteExpenseReversesLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := newTestGroup(t, store, "Alice", "Bob")

	expense := &models.Expense{
		GroupID: group.ID,
		Total:   money.MustFromString("50.00"),
		PayerID: "Alice",
		Policy:  calculator.SplitEqual,
		Shares: []models.ExpenseShare{
			{ParticipantID: "Alice", Amount: money.MustFromString("25.00")},
			{ParticipantID: "Bob", Amount: money.MustFromString("25.00")},
		},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	require.NoError(t, store.DeleteExpense(ctx, expense.ID))

	balances, err := store.ListMemberBalances(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, balanceFor(t, balances, "Alice").IsZero())
	assert.True(t, balanceFor(t, balances, "Bob").IsZero())

	_, err = store.GetExpense(ctx, expense.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, store.DeleteExpense(ctx, expense.ID), storage.ErrNotFound)
}

func TestListExpensesByGroup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := newTestGroup(t, store, "Alice", "Bob")

	for i, total := range []string{"10.00", "20.00"} {
		expense := &models.Expense{
			GroupID:   group.ID,
			Total:     money.MustFromString(total),
			PayerID:   "Alice",
			Policy:    calculator.SplitExact,
			CreatedAt: int64(1000 + i),
			Shares: []models.ExpenseShare{
				{ParticipantID: "Alice", Amount: money.MustFromString(total)},
			},
		}
		require.NoError(t, store.CreateExpense(ctx, expense))
	}

	expenses, err := store.ListExpensesByGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "20.00", expenses[0].Total.String(), "newest first")
	require.Len(t, expenses[0].Shares, 1)
}

func TestSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := newTestGroup(t, store, "Alice", "Bob")

	settlement := &models.Settlement{
		GroupID:    group.ID,
		FromUserID: "Bob",
		ToUserID:   "Alice",
		Amount:     money.MustFromString("12.50"),
		Note:       "venmo",
	}
	require.NoError(t, store.CreateSettlement(ctx, settlement))
	assert.NotEmpty(t, settlement.ID)

	balances, err := store.ListMemberBalances(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.50", balanceFor(t, balances, "Bob").String())
	assert.Equal(t, "-12.50", balanceFor(t, balances, "Alice").String())

	settlements, err := store.ListSettlementsByGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, settlements, 1)
	assert.Equal(t, "venmo", settlements[0].Note)
	assert.Equal(t, "12.50", settlements[0].Amount.String())

	// Settling against an unknown member rolls the whole thing back.
	bad := &models.Settlement{
		GroupID:    group.ID,
		FromUserID: "Mallory",
		ToUserID:   "Alice",
		Amount:     money.MustFromString("1.00"),
	}
	require.ErrorIs(t, store.CreateSettlement(ctx, bad), storage.ErrNotFound)
	settlements, err = store.ListSettlementsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, settlements, 1)
}

// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitledger/splitledger/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Implementations must apply each expense, expense reversal, and settlement
// as a single atomic unit against the running member balances: either every
// balance mutation for the operation applies or none do.
type Store interface {
	// CreateGroup persists a new group with its initial members, all at a
	// zero balance. The group.ID field is populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID, including members in join order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddGroupMembers adds the given members to a group at a zero balance.
	// Members that already exist are left untouched.
	AddGroupMembers(ctx context.Context, groupID string, members []string) error

	// ListMemberBalances returns the current net balance of every group
	// member, in member join order.
	ListMemberBalances(ctx context.Context, groupID string) ([]models.MemberBalance, error)

	// CreateExpense persists an expense with its resolved shares and applies
	// the ledger mutations (credit the payer by the total, debit each
	// participant by their share) in one transaction.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, including its shares.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves all expenses for a group, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense and reverses its stored shares and
	// payer credit in one transaction.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a settlement and moves balance from the
	// payee to the payer in one transaction.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup retrieves all settlements for a group, newest
	// first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}

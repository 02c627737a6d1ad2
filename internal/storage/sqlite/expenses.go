package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/storage"
)

// CreateExpense persists an expense with its shares and applies the ledger
// mutations in one transaction: the payer's balance is credited by the total
// and each participant's balance is debited by their share. Either every
// mutation applies or none do.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, group_id, description, total_cents, payer, policy, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.GroupID, expense.Description, expense.Total.Cents(),
		expense.PayerID, string(expense.Policy), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, share := range expense.Shares {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, participant, amount_cents, position) VALUES (?, ?, ?, ?)",
			expense.ID, share.ParticipantID, share.Amount.Cents(), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := adjustBalance(ctx, tx, expense.GroupID, expense.PayerID, expense.Total.Cents()); err != nil {
		return err
	}
	for _, share := range expense.Shares {
		if err := adjustBalance(ctx, tx, expense.GroupID, share.ParticipantID, -share.Amount.Cents()); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its shares in resolution
// order.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		"SELECT id, group_id, description, total_cents, payer, policy, created_at FROM expenses WHERE id = ?",
		expenseID,
	))
	if err != nil {
		return nil, err
	}

	shares, err := s.expenseShares(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Shares = shares

	return expense, nil
}

// ListExpensesByGroup retrieves all expenses for a group with their shares,
// newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, description, total_cents, payer, policy, created_at FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		shares, err := s.expenseShares(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Shares = shares
	}

	return expenses, nil
}

// DeleteExpense removes an expense and reverses its stored ledger mutations
// in one transaction: each participant is re-credited by their stored share
// and the payer re-debited by the stored total. The stored shares are used,
// never a recomputation.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		groupID    string
		payer      string
		totalCents int64
	)
	err = tx.QueryRowContext(ctx,
		"SELECT group_id, payer, total_cents FROM expenses WHERE id = ?",
		expenseID,
	).Scan(&groupID, &payer, &totalCents)
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get expense: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT participant, amount_cents FROM expense_shares WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to get shares: %w", err)
	}

	type storedShare struct {
		participant string
		cents       int64
	}
	var shares []storedShare
	for rows.Next() {
		var share storedShare
		if err := rows.Scan(&share.participant, &share.cents); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}

	if err := adjustBalance(ctx, tx, groupID, payer, -totalCents); err != nil {
		return err
	}
	for _, share := range shares {
		if err := adjustBalance(ctx, tx, groupID, share.participant, share.cents); err != nil {
			return err
		}
	}

	// Shares go with the expense via ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var (
		totalCents int64
		policy     string
	)
	err := row.Scan(&expense.ID, &expense.GroupID, &expense.Description,
		&totalCents, &expense.PayerID, &policy, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}
	expense.Total = money.FromCents(totalCents)
	expense.Policy = calculator.SplitPolicy(policy)
	return expense, nil
}

func (s *SQLiteStore) expenseShares(ctx context.Context, expenseID string) ([]models.ExpenseShare, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant, amount_cents FROM expense_shares WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []models.ExpenseShare
	for rows.Next() {
		var (
			participant string
			cents       int64
		)
		if err := rows.Scan(&participant, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, models.ExpenseShare{
			ParticipantID: participant,
			Amount:        money.FromCents(cents),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return shares, nil
}

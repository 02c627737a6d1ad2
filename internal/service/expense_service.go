// Package service implements the workflows that wrap the ledger arithmetic:
// expense creation and deletion, balance reads, settlement suggestions, and
// settlement recording.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/storage"
)

// ErrInvalidInput marks request-level validation failures. Resolver failures
// keep their own *calculator.ValidationError type.
var ErrInvalidInput = errors.New("invalid input")

// ExpenseService implements the expense creation and deletion workflows.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput is a request to apply a new expense to a group ledger.
type CreateExpenseInput struct {
	GroupID      string
	Description  string
	Total        money.Money
	PayerID      string
	Policy       calculator.SplitPolicy
	Participants []calculator.ParticipantInput
}

// CreateExpense resolves the split and applies it to the group ledger
// atomically: the payer is credited by the total and every participant
// debited by their share, or nothing is applied at all. Validation failures
// abort before any balance mutation.
//
// The payer is moved to the front of the participant list before resolution,
// so round-down remainders land on the payer.
func (s *ExpenseService) CreateExpense(ctx context.Context, in CreateExpenseInput) (*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}

	if in.PayerID == "" {
		return nil, fmt.Errorf("payer_id is required: %w", ErrInvalidInput)
	}
	if !containsParticipant(in.PayerID, in.Participants) {
		return nil, fmt.Errorf("payer %q must be one of the participants: %w", in.PayerID, ErrInvalidInput)
	}

	participants := payerFirst(in.PayerID, in.Participants)

	shares, err := calculator.Resolve(in.Total, in.Policy, participants)
	if err != nil {
		slog.Error("expense resolution failed", "group_id", in.GroupID, "error", err)
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     in.GroupID,
		Description: in.Description,
		Total:       in.Total,
		PayerID:     in.PayerID,
		Policy:      in.Policy,
		Shares:      make([]models.ExpenseShare, len(shares)),
	}
	for i, share := range shares {
		expense.Shares[i] = models.ExpenseShare{
			ParticipantID: share.ParticipantID,
			Amount:        share.Amount,
		}
	}

	// Anyone on the expense who is not yet a group member joins at zero
	// balance before the ledger mutation touches their row.
	if newcomers := missingMembers(participants, group.Members); len(newcomers) > 0 {
		if err := s.store.AddGroupMembers(ctx, in.GroupID, newcomers); err != nil {
			return nil, err
		}
		slog.Info("added expense participants to group", "group_id", in.GroupID, "members", newcomers)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("expense creation failed", "group_id", in.GroupID, "error", err)
		return nil, err
	}

	return expense, nil
}

// GetExpense retrieves an expense with its stored shares.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *ExpenseService) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// DeleteExpense reverses a previously applied expense using its stored
// shares, atomically.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("expense deletion failed", "expense_id", expenseID, "error", err)
		return err
	}
	return nil
}

func containsParticipant(id string, participants []calculator.ParticipantInput) bool {
	for _, p := range participants {
		if p.ParticipantID == id {
			return true
		}
	}
	return false
}

// payerFirst returns the participants with the payer moved to index 0,
// everyone else keeping their relative order.
func payerFirst(payerID string, participants []calculator.ParticipantInput) []calculator.ParticipantInput {
	ordered := make([]calculator.ParticipantInput, 0, len(participants))
	for _, p := range participants {
		if p.ParticipantID == payerID {
			ordered = append([]calculator.ParticipantInput{p}, ordered...)
			continue
		}
		ordered = append(ordered, p)
	}
	return ordered
}

// missingMembers returns participant IDs that are not already group members.
func missingMembers(participants []calculator.ParticipantInput, members []string) []string {
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}
	var missing []string
	for _, p := range participants {
		if !memberSet[p.ParticipantID] {
			missing = append(missing, p.ParticipantID)
		}
	}
	return missing
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/storage"
)

// BalanceService implements the balances and settlement workflows.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GroupBalances returns the current net balance of every group member, in
// member join order.
func (s *BalanceService) GroupBalances(ctx context.Context, groupID string) ([]models.MemberBalance, error) {
	return s.store.ListMemberBalances(ctx, groupID)
}

// SettlementSuggestions reads the current balances and collapses them into
// settling transfers. A group whose balances do not sum to zero (possible
// only through data damage, since every mutation is double-entry) still gets
// suggestions for everything that can be matched; the residual is logged.
func (s *BalanceService) SettlementSuggestions(ctx context.Context, groupID string) ([]calculator.Transfer, error) {
	memberBalances, err := s.store.ListMemberBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := make([]calculator.NetBalance, len(memberBalances))
	var residual money.Money
	for i, b := range memberBalances {
		balances[i] = calculator.NetBalance{ParticipantID: b.ParticipantID, Balance: b.Balance}
		residual = residual.Add(b.Balance)
	}
	if !residual.IsZero() {
		slog.Warn("group balances do not sum to zero", "group_id", groupID, "residual", residual)
	}

	return calculator.Simplify(balances), nil
}

// RecordSettlementInput is a request to record a payment between members.
type RecordSettlementInput struct {
	GroupID    string
	FromUserID string
	ToUserID   string
	Amount     money.Money
	Note       string
}

// RecordSettlement records a payment from one member to another and moves
// the paid amount between their balances atomically. The amount is whatever
// was actually paid; it does not have to match a suggested transfer.
func (s *BalanceService) RecordSettlement(ctx context.Context, in RecordSettlementInput) (*models.Settlement, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("settlement amount must be greater than zero: %w", ErrInvalidInput)
	}
	if in.FromUserID == "" || in.ToUserID == "" {
		return nil, fmt.Errorf("both payer and payee are required: %w", ErrInvalidInput)
	}
	if in.FromUserID == in.ToUserID {
		return nil, fmt.Errorf("payer and payee must differ: %w", ErrInvalidInput)
	}

	settlement := &models.Settlement{
		GroupID:    in.GroupID,
		FromUserID: in.FromUserID,
		ToUserID:   in.ToUserID,
		Amount:     in.Amount,
		Note:       in.Note,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("settlement recording failed", "group_id", in.GroupID, "error", err)
		return nil, err
	}

	return settlement, nil
}

// ListSettlements retrieves all recorded settlements for a group.
func (s *BalanceService) ListSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByGroup(ctx, groupID)
}

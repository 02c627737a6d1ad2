package models

import (
	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/money"
)

// Expense represents one shared expense applied to a group's ledger.
// The resolved shares are persisted with the expense so that deletion can
// reverse exactly what was applied, independent of the current resolver.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group whose ledger this expense was applied to.
	GroupID string `json:"group_id"`

	// Description is the human-readable label (e.g., "Groceries").
	Description string `json:"description"`

	// Total is the full expense amount paid by the payer.
	Total money.Money `json:"total"`

	// PayerID is the member who paid the total up front. The payer's running
	// balance is credited by Total when the expense is applied.
	PayerID string `json:"payer_id"`

	// Policy is the split policy the shares were resolved under.
	Policy calculator.SplitPolicy `json:"policy"`

	// Shares are the resolved per-member shares, in resolution order.
	// Their amounts sum exactly to Total.
	Shares []ExpenseShare `json:"shares"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// ExpenseShare is the persisted share of one member for one expense.
// The member's running balance is debited by Amount when the expense is
// applied and re-credited when it is deleted.
type ExpenseShare struct {
	ParticipantID string      `json:"participant_id"`
	Amount        money.Money `json:"amount"`
}

package models

import "github.com/splitledger/splitledger/internal/money"

// Settlement represents a recorded payment between group members to clear
// debt. Recording one credits the payer's balance and debits the payee's by
// Amount; the amount does not have to match a suggested transfer.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// GroupID is the group this settlement belongs to.
	GroupID string `json:"group_id"`

	// FromUserID is the member who paid (debtor settling up).
	FromUserID string `json:"from_user_id"`

	// ToUserID is the member who received payment (creditor being paid).
	ToUserID string `json:"to_user_id"`

	// Amount is the payment amount. Always strictly positive.
	Amount money.Money `json:"amount"`

	// Note is an optional description for the settlement.
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`
}

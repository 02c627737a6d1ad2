package models

import "github.com/splitledger/splitledger/internal/money"

// Group represents a set of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string `json:"name"`

	// Members is the list of member names in this group, in the order they
	// joined. New members start with a zero balance.
	Members []string `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// MemberBalance is a snapshot of one member's net position in a group.
// Positive means the member is owed money, negative means they owe.
type MemberBalance struct {
	ParticipantID string      `json:"participant_id"`
	Balance       money.Money `json:"balance"`
}

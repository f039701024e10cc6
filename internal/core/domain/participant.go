package domain

import "github.com/shopspring/decimal"

// Participant represents a group member taking part in an expense.
// Membership itself is managed by the group collaborator; within a single
// allocation computation the participant set is immutable.
type Participant struct {
	UserID string `json:"userId"` // Primary Key (e.g., UUID)
	Name   string `json:"name"`
}

// ParticipantInput carries one participant's raw allocation input for an expense.
// The meaning of RawValue depends on the expense split method: an exact amount in
// whole currency units (EXACT), a percentage (PERCENTAGE), a share weight
// (SHARES); it is ignored for EQUAL.
type ParticipantInput struct {
	UserID   string
	Included bool
	RawValue decimal.Decimal
}

// Share is one participant's computed obligation for an expense, in whole
// currency units (VND). Zero is a valid share; negative shares never leave the
// allocation engine.
type Share struct {
	UserID string `json:"userId"`
	Amount int64  `json:"amount"`
}

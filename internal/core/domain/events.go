package domain

import "time"

// DebtRecorded is published once per debt record created when the finalized
// shares of an expense are saved. The notification collaborator consumes these
// to alert each ower.
type DebtRecorded struct {
	DebtID        string    `json:"debt_id"`
	ExpenseID     string    `json:"expense_id"`
	GroupID       string    `json:"group_id"`
	FromUserID    string    `json:"from_user_id"`
	ToUserID      string    `json:"to_user_id"`
	Amount        int64     `json:"amount"`
	AmountDisplay string    `json:"amount_display"` // Pre-formatted VND string for notification text
	OccurredAt    time.Time `json:"occurred_at"`
}

// DebtSettledEvent is published when a debt record transitions to SETTLED.
type DebtSettledEvent struct {
	DebtID     string    `json:"debt_id"`
	ExpenseID  string    `json:"expense_id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	Amount     int64     `json:"amount"`
	SettledBy  string    `json:"settled_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

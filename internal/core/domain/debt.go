package domain

import "time"

// DebtStatus indicates the settlement state of a debt record.
// UNSETTLED -> SETTLED is the only transition and it is terminal.
type DebtStatus string

const (
	DebtUnsettled DebtStatus = "UNSETTLED"
	DebtSettled   DebtStatus = "SETTLED"
)

// Debt is a directed obligation from a non-payer participant toward the payer
// of one expense. A debt is created once per (expense, non-payer participant)
// pair; only its status mutates thereafter, the amount is immutable.
// Invariants: FromUserID != ToUserID, Amount > 0.
type Debt struct {
	DebtID        string     `json:"id"`        // Primary Key (e.g., UUID)
	ExpenseID     string     `json:"expenseId"` // FK -> Expense (back-reference, not ownership)
	GroupID       string     `json:"groupId"`   // Denormalized from the expense for group-level reads
	FromUserID    string     `json:"fromUserId"`
	ToUserID      string     `json:"toUserId"`
	Amount        int64      `json:"amount"` // Whole VND, > 0
	Status        DebtStatus `json:"status"`
	Version       int64      `json:"-"` // Optimistic-lock counter, managed by the store
	CreatedAt     time.Time  `json:"createdTime"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}

// IsSettled reports whether the debt has reached its terminal state.
func (d Debt) IsSettled() bool {
	return d.Status == DebtSettled
}

package domain

// AllocationPolicy governs how per-participant raw inputs map to monetary shares.
type AllocationPolicy string

const (
	SplitEqual      AllocationPolicy = "EQUAL"
	SplitExact      AllocationPolicy = "EXACT"
	SplitPercentage AllocationPolicy = "PERCENTAGE"
	SplitShares     AllocationPolicy = "SHARES"
)

// IsValid reports whether p is one of the four supported policies.
func (p AllocationPolicy) IsValid() bool {
	switch p {
	case SplitEqual, SplitExact, SplitPercentage, SplitShares:
		return true
	}
	return false
}

// Expense represents a single group expense paid by one member and apportioned
// among participants. Amount is in whole currency units (VND); the invariant is
// that the computed shares across included participants sum exactly to Amount.
type Expense struct {
	ExpenseID   string           `json:"expenseID"` // Primary Key (e.g., UUID)
	GroupID     string           `json:"groupID"`   // FK -> group collaborator (Not Null)
	Description string           `json:"description"`
	Amount      int64            `json:"amount"` // Whole VND (Not Null, > 0)
	PaidBy      string           `json:"paidBy"` // UserID of the payer (Not Null)
	SplitMethod AllocationPolicy `json:"splitMethod"`
	AuditFields
}

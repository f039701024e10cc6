package allocation

import (
	"time"

	"github.com/google/uuid"

	"github.com/anygroup/splitfair/internal/core/domain"
)

// GenerateDebts emits one directed UNSETTLED debt record per participant share
// toward the expense payer. The payer's own share is excluded (self-debt is
// never recorded), as are zero shares. Callers replace, not append, the prior
// record set for the expense when regenerating after an edit.
func GenerateDebts(expense domain.Expense, shares []domain.Share, now time.Time) []domain.Debt {
	debts := make([]domain.Debt, 0, len(shares))
	for _, share := range shares {
		if share.UserID == expense.PaidBy || share.Amount == 0 {
			continue
		}
		debts = append(debts, domain.Debt{
			DebtID:        uuid.NewString(),
			ExpenseID:     expense.ExpenseID,
			GroupID:       expense.GroupID,
			FromUserID:    share.UserID,
			ToUserID:      expense.PaidBy,
			Amount:        share.Amount,
			Status:        domain.DebtUnsettled,
			Version:       1,
			CreatedAt:     now,
			LastUpdatedAt: now,
		})
	}
	return debts
}

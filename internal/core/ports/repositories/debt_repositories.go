package repositories

import (
	"context"
	"time"

	"github.com/anygroup/splitfair/internal/core/domain"
)

// DebtReader defines read operations for debt records
type DebtReader interface {
	// FindDebtByID retrieves a single debt record.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	// FindDebtsByIDs retrieves the given debt records keyed by ID. IDs absent
	// from the result simply do not exist; no error is returned for them.
	FindDebtsByIDs(ctx context.Context, debtIDs []string) (map[string]domain.Debt, error)

	// ListDebtsByUser retrieves every debt record where the user is either the
	// ower or the payee, all statuses included.
	ListDebtsByUser(ctx context.Context, userID string) ([]domain.Debt, error)

	// ListDebtsByGroup retrieves every debt record belonging to a group.
	ListDebtsByGroup(ctx context.Context, groupID string) ([]domain.Debt, error)

	// ListDebtsByExpense retrieves the current debt record set of one expense.
	ListDebtsByExpense(ctx context.Context, expenseID string) ([]domain.Debt, error)
}

// DebtWriter defines the settlement mutations. Amounts and parties are
// immutable; only the status transitions, guarded by an optimistic version check.
type DebtWriter interface {
	// MarkDebtSettled transitions one UNSETTLED record to SETTLED. Returns
	// apperrors.ErrConcurrentModification when the version check fails.
	MarkDebtSettled(ctx context.Context, debtID string, version int64, now time.Time) error

	// MarkDebtsSettled transitions all given UNSETTLED records to SETTLED
	// within one database transaction, all-or-nothing.
	MarkDebtsSettled(ctx context.Context, debtIDs []string, now time.Time) error
}

// DebtRepositoryFacade combines all debt-related repository interfaces
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}

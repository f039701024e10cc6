package repositories

import (
	"context"

	"github.com/anygroup/splitfair/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense record.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// ReplaceExpenseDebts atomically deletes all debt records for the expense
	// and inserts the given set, within a single database transaction. This is
	// the replace (never append) primitive behind share regeneration.
	ReplaceExpenseDebts(ctx context.Context, expenseID string, debts []domain.Debt) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

package services

import (
	"context"

	"github.com/anygroup/splitfair/internal/core/domain"
	"github.com/anygroup/splitfair/internal/dto"
)

// ExpenseSvcFacade defines the expense workflow: creation with computed shares,
// retrieval, and saving the finalized share set as directed debt records.
type ExpenseSvcFacade interface {
	// CreateExpense validates the request, persists the expense, and returns it
	// together with the shares computed by the allocation engine. Debt records
	// are not persisted until SaveExpenseShares.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, []domain.Share, error)

	// GetExpenseByID returns the expense and its current debt record set.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, []domain.Debt, error)

	// SaveExpenseShares replaces the debt records of an expense with ones
	// generated from the finalized share amounts, atomically.
	SaveExpenseShares(ctx context.Context, req dto.SaveExpenseSharesRequest) ([]domain.Debt, error)
}

package services

import (
	"context"

	"github.com/anygroup/splitfair/internal/core/domain"
)

// DebtSvcFacade defines debt reads, aggregation, and the settlement workflow.
type DebtSvcFacade interface {
	// ListDebtsByUser returns the user's raw debt records, all statuses.
	ListDebtsByUser(ctx context.Context, userID string) ([]domain.Debt, error)

	// GetUserBalanceSummary aggregates the user's UNSETTLED debts into
	// per-counterparty payables/receivables, totals, and settlement suggestions.
	GetUserBalanceSummary(ctx context.Context, userID string) (*domain.BalanceSummary, error)

	// GetGroupNetBalances returns each member's net position in a group.
	GetGroupNetBalances(ctx context.Context, groupID string) ([]domain.GroupBalance, error)

	// SettleDebt transitions a single record to SETTLED. Settling an
	// already-settled record is an idempotent success.
	SettleDebt(ctx context.Context, debtID string, settlerUserID string) (*domain.Debt, error)

	// SettleDebtsBatch settles all given records all-or-nothing. Unknown IDs
	// abort the whole batch with apperrors.BatchSettleError.
	SettleDebtsBatch(ctx context.Context, debtIDs []string, settlerUserID string) ([]domain.Debt, error)
}

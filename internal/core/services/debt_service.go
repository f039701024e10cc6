package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anygroup/splitfair/internal/apperrors"
	"github.com/anygroup/splitfair/internal/core/allocation"
	"github.com/anygroup/splitfair/internal/core/domain"
	portsevents "github.com/anygroup/splitfair/internal/core/ports/events"
	portsrepo "github.com/anygroup/splitfair/internal/core/ports/repositories"
	portssvc "github.com/anygroup/splitfair/internal/core/ports/services"
	"github.com/anygroup/splitfair/internal/middleware"
	"github.com/anygroup/splitfair/internal/platform/metrics"
)

// TopicDebtSettled is the default event topic for settled debt records.
const TopicDebtSettled = "debt.settled"

// debtService provides debt reads, aggregation/netting, and the settlement
// workflow. All aggregation math delegates to the pure allocation package.
type debtService struct {
	debtRepo  portsrepo.DebtRepositoryFacade
	publisher portsevents.Publisher // optional; nil disables event publishing
	topic     string
}

// NewDebtService creates a new DebtService. An empty topic falls back to
// TopicDebtSettled.
func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade, publisher portsevents.Publisher, topic string) portssvc.DebtSvcFacade {
	if topic == "" {
		topic = TopicDebtSettled
	}
	return &debtService{
		debtRepo:  debtRepo,
		publisher: publisher,
		topic:     topic,
	}
}

// Ensure debtService implements the portssvc.DebtSvcFacade interface
var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// ListDebtsByUser returns the user's raw debt records, all statuses.
func (s *debtService) ListDebtsByUser(ctx context.Context, userID string) ([]domain.Debt, error) {
	debts, err := s.debtRepo.ListDebtsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts for user %s: %w", userID, err)
	}
	return debts, nil
}

// GetUserBalanceSummary aggregates the user's UNSETTLED debts into payables,
// receivables, totals, and settlement suggestions.
func (s *debtService) GetUserBalanceSummary(ctx context.Context, userID string) (*domain.BalanceSummary, error) {
	debts, err := s.debtRepo.ListDebtsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts for user %s: %w", userID, err)
	}
	summary := allocation.Summarize(userID, debts)
	return &summary, nil
}

// GetGroupNetBalances returns each member's net position within a group.
func (s *debtService) GetGroupNetBalances(ctx context.Context, groupID string) ([]domain.GroupBalance, error) {
	debts, err := s.debtRepo.ListDebtsByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts for group %s: %w", groupID, err)
	}
	return allocation.NetGroupBalances(debts), nil
}

// SettleDebt transitions one record to SETTLED. Settling an already-settled
// record is an idempotent success: the record is returned untouched.
func (s *debtService) SettleDebt(ctx context.Context, debtID string, settlerUserID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	if debt.IsSettled() {
		logger.Info("Debt already settled, treating as no-op", slog.String("debt_id", debtID))
		return debt, nil
	}

	now := time.Now().UTC()
	if err := s.debtRepo.MarkDebtSettled(ctx, debtID, debt.Version, now); err != nil {
		return nil, err
	}

	settled := *debt
	settled.Status = domain.DebtSettled
	settled.Version = debt.Version + 1
	settled.LastUpdatedAt = now

	metrics.DebtsSettledTotal.Inc()
	s.publishDebtSettled(ctx, settled, settlerUserID, now)

	logger.Info("Debt settled", slog.String("debt_id", debtID), slog.String("settled_by", settlerUserID))
	return &settled, nil
}

// SettleDebtsBatch settles the given records all-or-nothing. Any unknown ID
// aborts the batch before any write; already-settled IDs are no-ops within it.
func (s *debtService) SettleDebtsBatch(ctx context.Context, debtIDs []string, settlerUserID string) ([]domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	found, err := s.debtRepo.FindDebtsByIDs(ctx, debtIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load debts for batch settle: %w", err)
	}

	var missing []string
	for _, id := range debtIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &apperrors.BatchSettleError{MissingIDs: missing}
	}

	toSettle := make([]string, 0, len(debtIDs))
	for _, id := range debtIDs {
		if !found[id].IsSettled() {
			toSettle = append(toSettle, id)
		}
	}

	now := time.Now().UTC()
	if len(toSettle) > 0 {
		if err := s.debtRepo.MarkDebtsSettled(ctx, toSettle, now); err != nil {
			return nil, err
		}
		metrics.DebtsSettledTotal.Add(float64(len(toSettle)))
	}

	settled := make([]domain.Debt, 0, len(debtIDs))
	for _, id := range debtIDs {
		debt := found[id]
		if !debt.IsSettled() {
			debt.Status = domain.DebtSettled
			debt.Version++
			debt.LastUpdatedAt = now
			s.publishDebtSettled(ctx, debt, settlerUserID, now)
		}
		settled = append(settled, debt)
	}

	logger.Info("Debts settled in batch", slog.Int("requested", len(debtIDs)), slog.Int("transitioned", len(toSettle)), slog.String("settled_by", settlerUserID))
	return settled, nil
}

// publishDebtSettled emits the settlement event. Failures are logged and
// swallowed: the settlement already committed and notifications are best-effort.
func (s *debtService) publishDebtSettled(ctx context.Context, debt domain.Debt, settlerUserID string, occurredAt time.Time) {
	if s.publisher == nil {
		return
	}
	event := domain.DebtSettledEvent{
		DebtID:     debt.DebtID,
		ExpenseID:  debt.ExpenseID,
		FromUserID: debt.FromUserID,
		ToUserID:   debt.ToUserID,
		Amount:     debt.Amount,
		SettledBy:  settlerUserID,
		OccurredAt: occurredAt,
	}
	if err := s.publisher.Publish(ctx, s.topic, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to publish debt settled event", slog.String("debt_id", debt.DebtID), slog.String("error", err.Error()))
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/anygroup/splitfair/internal/apperrors"
	"github.com/anygroup/splitfair/internal/core/allocation"
	"github.com/anygroup/splitfair/internal/core/domain"
	portsevents "github.com/anygroup/splitfair/internal/core/ports/events"
	portsrepo "github.com/anygroup/splitfair/internal/core/ports/repositories"
	portssvc "github.com/anygroup/splitfair/internal/core/ports/services"
	"github.com/anygroup/splitfair/internal/dto"
	"github.com/anygroup/splitfair/internal/middleware"
	"github.com/anygroup/splitfair/internal/platform/metrics"
	"github.com/anygroup/splitfair/internal/utils"
)

// TopicExpenseShared is the default event topic for debts created from saved shares.
const TopicExpenseShared = "expense.shared"

// expenseService provides the expense workflow: allocation, persistence, and
// debt record replacement.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	debtRepo    portsrepo.DebtReader
	publisher   portsevents.Publisher // optional; nil disables event publishing
	topic       string
}

// NewExpenseService creates a new ExpenseService. An empty topic falls back to
// TopicExpenseShared.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, debtRepo portsrepo.DebtReader, publisher portsevents.Publisher, topic string) portssvc.ExpenseSvcFacade {
	if topic == "" {
		topic = TopicExpenseShared
	}
	return &expenseService{
		expenseRepo: expenseRepo,
		debtRepo:    debtRepo,
		publisher:   publisher,
		topic:       topic,
	}
}

// Ensure expenseService implements the portssvc.ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense validates the request, runs the allocation engine, persists the
// expense, and returns the computed shares. Debt records are written separately
// by SaveExpenseShares once the caller confirms the split.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, []domain.Share, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inputs, err := req.ToParticipantInputs()
	if err != nil {
		return nil, nil, err
	}

	shares, err := allocation.Allocate(req.Amount, req.SplitMethod, inputs)
	if err != nil {
		metrics.AllocationErrorsTotal.Inc()
		logger.Warn("Allocation rejected", slog.String("group_id", req.GroupID), slog.String("policy", string(req.SplitMethod)), slog.String("error", err.Error()))
		return nil, nil, err
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		GroupID:     req.GroupID,
		Description: req.Description,
		Amount:      req.Amount,
		PaidBy:      req.PaidBy,
		SplitMethod: req.SplitMethod,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("expense_id", expense.ExpenseID), slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to save expense: %w", err)
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID), slog.String("policy", string(req.SplitMethod)), slog.Int64("amount", req.Amount))
	return &expense, shares, nil
}

// GetExpenseByID returns the expense and its current debt record set.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, []domain.Debt, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}

	debts, err := s.debtRepo.ListDebtsByExpense(ctx, expenseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list debts for expense %s: %w", expenseID, err)
	}
	return expense, debts, nil
}

// SaveExpenseShares validates the finalized share amounts against the expense
// total, regenerates the debt record set, and atomically replaces the prior
// set. One DebtRecorded event is published per created record.
func (s *expenseService) SaveExpenseShares(ctx context.Context, req dto.SaveExpenseSharesRequest) ([]domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, req.ExpenseID)
	if err != nil {
		return nil, err
	}

	if req.TotalAmount != expense.Amount {
		return nil, fmt.Errorf("%w: request total %d does not match expense amount %d", apperrors.ErrValidation, req.TotalAmount, expense.Amount)
	}

	shares := make([]domain.Share, len(req.Shares))
	var sum int64
	for i, in := range req.Shares {
		shares[i] = domain.Share{UserID: in.UserID, Amount: in.ShareAmount}
		sum += in.ShareAmount
	}
	if sum != expense.Amount {
		return nil, &apperrors.AmountMismatchError{Expected: expense.Amount, Actual: sum}
	}

	now := time.Now().UTC()
	debts := allocation.GenerateDebts(*expense, shares, now)

	if err := s.expenseRepo.ReplaceExpenseDebts(ctx, expense.ExpenseID, debts); err != nil {
		logger.Error("Failed to replace expense debts", slog.String("expense_id", expense.ExpenseID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to replace debts for expense %s: %w", expense.ExpenseID, err)
	}

	s.publishDebtsRecorded(ctx, debts, now)

	logger.Info("Expense shares saved", slog.String("expense_id", expense.ExpenseID), slog.Int("debt_count", len(debts)))
	return debts, nil
}

// publishDebtsRecorded emits one event per debt record. Failures are logged and
// swallowed: the ledger write already succeeded and notifications are best-effort.
func (s *expenseService) publishDebtsRecorded(ctx context.Context, debts []domain.Debt, occurredAt time.Time) {
	if s.publisher == nil {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, d := range debts {
		event := domain.DebtRecorded{
			DebtID:        d.DebtID,
			ExpenseID:     d.ExpenseID,
			GroupID:       d.GroupID,
			FromUserID:    d.FromUserID,
			ToUserID:      d.ToUserID,
			Amount:        d.Amount,
			AmountDisplay: utils.FormatVND(d.Amount),
			OccurredAt:    occurredAt,
		}
		if err := s.publisher.Publish(ctx, s.topic, event); err != nil {
			logger.Error("Failed to publish debt recorded event", slog.String("debt_id", d.DebtID), slog.String("error", err.Error()))
		}
	}
}

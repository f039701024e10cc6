package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/anygroup/splitfair/internal/core/domain"
)

// MockExpenseRepository is a mock type for the ExpenseRepositoryFacade interface
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ReplaceExpenseDebts(ctx context.Context, expenseID string, debts []domain.Debt) error {
	args := m.Called(ctx, expenseID, debts)
	return args.Error(0)
}

// MockDebtRepository is a mock type for the DebtRepositoryFacade interface
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindDebtsByIDs(ctx context.Context, debtIDs []string) (map[string]domain.Debt, error) {
	args := m.Called(ctx, debtIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListDebtsByUser(ctx context.Context, userID string) ([]domain.Debt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListDebtsByGroup(ctx context.Context, groupID string) ([]domain.Debt, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListDebtsByExpense(ctx context.Context, expenseID string) ([]domain.Debt, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) MarkDebtSettled(ctx context.Context, debtID string, version int64, now time.Time) error {
	args := m.Called(ctx, debtID, version, now)
	return args.Error(0)
}

func (m *MockDebtRepository) MarkDebtsSettled(ctx context.Context, debtIDs []string, now time.Time) error {
	args := m.Called(ctx, debtIDs, now)
	return args.Error(0)
}

// MockPublisher is a mock type for the events.Publisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, event any) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

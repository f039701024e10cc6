package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anygroup/splitfair/internal/apperrors"
	"github.com/anygroup/splitfair/internal/core/domain"
	portsrepo "github.com/anygroup/splitfair/internal/core/ports/repositories"
)

type PgxExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewPgxExpenseRepository creates a new repository for expense data.
func NewPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{pool: pool}
}

// SaveExpense inserts a new expense record.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (expense_id, group_id, description, amount, paid_by, split_method, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.GroupID,
		expense.Description,
		expense.Amount,
		expense.PaidBy,
		expense.SplitMethod,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT expense_id, group_id, description, amount, paid_by, split_method, created_at, created_by, last_updated_at, last_updated_by
		FROM expenses
		WHERE expense_id = $1;
	`
	var expense domain.Expense
	err := r.pool.QueryRow(ctx, query, expenseID).Scan(
		&expense.ExpenseID,
		&expense.GroupID,
		&expense.Description,
		&expense.Amount,
		&expense.PaidBy,
		&expense.SplitMethod,
		&expense.CreatedAt,
		&expense.CreatedBy,
		&expense.LastUpdatedAt,
		&expense.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	return &expense, nil
}

// ReplaceExpenseDebts deletes all debt records of the expense and inserts the
// given set within a single DB transaction, so regeneration never appends to a
// stale record set.
func (r *PgxExpenseRepository) ReplaceExpenseDebts(ctx context.Context, expenseID string, debts []domain.Debt) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM debts WHERE expense_id = $1;`, expenseID); err != nil {
		return fmt.Errorf("failed to delete prior debts for expense %s: %w", expenseID, err)
	}

	// Use pgx batching for the inserts
	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO debts (debt_id, expense_id, group_id, from_user_id, to_user_id, amount, status, version, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, d := range debts {
		batch.Queue(insertQuery,
			d.DebtID,
			d.ExpenseID,
			d.GroupID,
			d.FromUserID,
			d.ToUserID,
			d.Amount,
			d.Status,
			d.Version,
			d.CreatedAt,
			d.LastUpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert debt batch for expense %s: %w", expenseID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit debt replacement for expense %s: %w", expenseID, err)
	}
	return nil
}

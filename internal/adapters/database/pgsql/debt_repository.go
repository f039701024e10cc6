package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anygroup/splitfair/internal/apperrors"
	"github.com/anygroup/splitfair/internal/core/domain"
	portsrepo "github.com/anygroup/splitfair/internal/core/ports/repositories"
)

const debtColumns = `debt_id, expense_id, group_id, from_user_id, to_user_id, amount, status, version, created_at, last_updated_at`

type PgxDebtRepository struct {
	pool *pgxpool.Pool
}

// NewPgxDebtRepository creates a new repository for debt records.
func NewPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{pool: pool}
}

// FindDebtByID retrieves a single debt record.
func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`

	debt, err := scanDebt(r.pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("debt %s: %w", debtID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find debt by ID %s: %w", debtID, err)
	}
	return debt, nil
}

// FindDebtsByIDs retrieves the given debt records keyed by ID. Missing IDs are
// simply absent from the result map.
func (r *PgxDebtRepository) FindDebtsByIDs(ctx context.Context, debtIDs []string) (map[string]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, debtIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts by IDs: %w", err)
	}
	defer rows.Close()

	debts := make(map[string]domain.Debt, len(debtIDs))
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt row: %w", err)
		}
		debts[debt.DebtID] = *debt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debt rows: %w", err)
	}
	return debts, nil
}

// ListDebtsByUser retrieves every debt record where the user is either side,
// newest first.
func (r *PgxDebtRepository) ListDebtsByUser(ctx context.Context, userID string) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE from_user_id = $1 OR to_user_id = $1 ORDER BY created_at DESC, debt_id;`
	return r.listDebts(ctx, query, userID)
}

// ListDebtsByGroup retrieves every debt record belonging to a group.
func (r *PgxDebtRepository) ListDebtsByGroup(ctx context.Context, groupID string) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE group_id = $1 ORDER BY created_at DESC, debt_id;`
	return r.listDebts(ctx, query, groupID)
}

// ListDebtsByExpense retrieves the current debt record set of one expense.
func (r *PgxDebtRepository) ListDebtsByExpense(ctx context.Context, expenseID string) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE expense_id = $1 ORDER BY created_at, debt_id;`
	return r.listDebts(ctx, query, expenseID)
}

// MarkDebtSettled transitions one UNSETTLED record to SETTLED under an
// optimistic version check. Zero affected rows means another request settled
// or replaced the record in between.
func (r *PgxDebtRepository) MarkDebtSettled(ctx context.Context, debtID string, version int64, now time.Time) error {
	query := `
		UPDATE debts
		SET status = $1, version = version + 1, last_updated_at = $2
		WHERE debt_id = $3 AND version = $4 AND status = $5;
	`
	tag, err := r.pool.Exec(ctx, query, domain.DebtSettled, now, debtID, version, domain.DebtUnsettled)
	if err != nil {
		return fmt.Errorf("failed to settle debt %s: %w", debtID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("debt %s: %w", debtID, apperrors.ErrConcurrentModification)
	}
	return nil
}

// MarkDebtsSettled transitions all given UNSETTLED records to SETTLED within
// one DB transaction. If any record was touched concurrently the whole batch
// rolls back.
func (r *PgxDebtRepository) MarkDebtsSettled(ctx context.Context, debtIDs []string, now time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	query := `
		UPDATE debts
		SET status = $1, version = version + 1, last_updated_at = $2
		WHERE debt_id = ANY($3) AND status = $4;
	`
	tag, err := tx.Exec(ctx, query, domain.DebtSettled, now, debtIDs, domain.DebtUnsettled)
	if err != nil {
		return fmt.Errorf("failed to settle debt batch: %w", err)
	}
	if tag.RowsAffected() != int64(len(debtIDs)) {
		return fmt.Errorf("settled %d of %d debts: %w", tag.RowsAffected(), len(debtIDs), apperrors.ErrConcurrentModification)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit debt batch settle: %w", err)
	}
	return nil
}

func (r *PgxDebtRepository) listDebts(ctx context.Context, query string, arg any) ([]domain.Debt, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	var debts []domain.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt row: %w", err)
		}
		debts = append(debts, *debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debt rows: %w", err)
	}
	return debts, nil
}

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var debt domain.Debt
	err := row.Scan(
		&debt.DebtID,
		&debt.ExpenseID,
		&debt.GroupID,
		&debt.FromUserID,
		&debt.ToUserID,
		&debt.Amount,
		&debt.Status,
		&debt.Version,
		&debt.CreatedAt,
		&debt.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &debt, nil
}

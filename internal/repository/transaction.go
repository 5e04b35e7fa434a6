package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/apperr"
)

// TransactionRepository stores checkout records. Snapshots are written as
// jsonb and read back as-is; they are never re-resolved from catalog tables.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository instance.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `
	t.id, t.player_id, t.name, t.account_user, t.tax, t.value, t.status,
	t.history_voucher_topup, t.history_payment, t.history_user,
	t.category_id, t.user_id, t.created_at, t.updated_at
`

func scanTransaction(row scanner, extra ...any) (*model.Transaction, error) {
	var tx model.Transaction
	dest := []any{
		&tx.ID,
		&tx.PlayerID,
		&tx.Name,
		&tx.AccountUser,
		&tx.Tax,
		&tx.Value,
		&tx.Status,
		&tx.HistoryVoucherTopup,
		&tx.HistoryPayment,
		&tx.HistoryUser,
		&tx.CategoryID,
		&tx.UserID,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &tx, nil
}

func validateTransaction(tx *model.Transaction) error {
	v := apperr.NewValidation("Transaction validation failed")
	if tx.PlayerID == uuid.Nil {
		v.Add("player", "required", "player is required", nil)
	}
	if strings.TrimSpace(tx.Name) == "" {
		v.Add("name", "required", "name is required", tx.Name)
	}
	if strings.TrimSpace(tx.AccountUser) == "" {
		v.Add("accountUser", "required", "account user is required", tx.AccountUser)
	}
	if strings.TrimSpace(tx.HistoryVoucherTopup.GameName) == "" {
		v.Add("historyVoucherTopup.gameName", "required", "game name is required", nil)
	}
	if tx.Tax.IsNegative() {
		v.Add("tax", "min", "tax must not be negative", tx.Tax.String())
	}
	if tx.Value.IsNegative() {
		v.Add("value", "min", "value must not be negative", tx.Value.String())
	}
	return v.Err()
}

// Create persists a transaction and returns it with id and timestamps set.
// Returns an *apperr.ValidationError when a required field is missing.
func (r *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}

	status := tx.Status
	if status == "" {
		status = model.TxStatusPending
	}

	query := `
		INSERT INTO transactions AS t (
			player_id, name, account_user, tax, value, status,
			history_voucher_topup, history_payment, history_user,
			category_id, user_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING ` + transactionColumns

	created, err := scanTransaction(r.pool.QueryRow(ctx, query,
		tx.PlayerID,
		tx.Name,
		tx.AccountUser,
		tx.Tax,
		tx.Value,
		status,
		tx.HistoryVoucherTopup,
		tx.HistoryPayment,
		tx.HistoryUser,
		tx.CategoryID,
		tx.UserID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return created, nil
}

// filterClause renders f as a WHERE clause over alias t. Args are numbered
// from $1.
func filterClause(f model.TransactionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.Status != "" {
		args = append(args, containsPattern(f.Status))
		conds = append(conds, fmt.Sprintf(`t.status ILIKE $%d`, len(args)))
	}
	if f.PlayerID != nil {
		args = append(args, *f.PlayerID)
		conds = append(conds, fmt.Sprintf(`t.player_id = $%d`, len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Find returns transactions matching f, newest first.
func (r *TransactionRepository) Find(ctx context.Context, f model.TransactionFilter) ([]model.Transaction, error) {
	where, args := filterClause(f)
	query := `SELECT ` + transactionColumns + ` FROM transactions t` + where + ` ORDER BY t.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// SumValue totals the value of transactions matching f. An empty match sums to zero.
func (r *TransactionRepository) SumValue(ctx context.Context, f model.TransactionFilter) (decimal.Decimal, error) {
	where, args := filterClause(f)
	query := `SELECT COALESCE(SUM(t.value), 0) FROM transactions t` + where

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transaction value: %w", err)
	}
	return total, nil
}

// SumByCategory totals a player's transaction value per voucher category.
// Transactions without a category form their own group with a nil CategoryID.
func (r *TransactionRepository) SumByCategory(ctx context.Context, playerID uuid.UUID) ([]model.CategoryValue, error) {
	const query = `
		SELECT category_id, COALESCE(SUM(value), 0)
		FROM transactions
		WHERE player_id = $1
		GROUP BY category_id
		ORDER BY category_id NULLS LAST
	`

	rows, err := r.pool.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category: %w", err)
	}
	defer rows.Close()

	groups := []model.CategoryValue{}
	for rows.Next() {
		var g model.CategoryValue
		if err := rows.Scan(&g.CategoryID, &g.Value); err != nil {
			return nil, fmt.Errorf("failed to scan category value: %w", err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category values: %w", err)
	}

	return groups, nil
}

// GetByID retrieves a transaction by ID.
// Returns ErrTransactionNotFound if it does not exist.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.id = $1`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

// ListByPlayerWithCategory returns a player's transactions with the voucher
// category loaded when it still exists, most recently updated first.
func (r *TransactionRepository) ListByPlayerWithCategory(ctx context.Context, playerID uuid.UUID) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `, c.id, c.name, c.created_at, c.updated_at
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.player_id = $1
		ORDER BY t.updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var (
			catID        *uuid.UUID
			catName      *string
			catCreatedAt *time.Time
			catUpdatedAt *time.Time
		)
		tx, err := scanTransaction(rows, &catID, &catName, &catCreatedAt, &catUpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if catID != nil {
			tx.Category = &model.Category{
				ID:        *catID,
				Name:      deref(catName),
				CreatedAt: derefTime(catCreatedAt),
				UpdatedAt: derefTime(catUpdatedAt),
			}
		}
		transactions = append(transactions, *tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

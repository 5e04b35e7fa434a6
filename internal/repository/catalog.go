package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"voucher-topup-api/internal/model"
)

// CatalogRepository handles the read-mostly reference data a checkout points
// at: categories, nominals, payments and banks.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository instance.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ========== Categories ==========

// CreateCategory inserts a category.
func (r *CatalogRepository) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	const query = `
		INSERT INTO categories (name, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id, name, created_at, updated_at
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

// ListCategories returns every category ordered by name.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	const query = `
		SELECT id, name, created_at, updated_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// DeleteCategory removes a category. Vouchers keep existing with no category.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ========== Nominals ==========

const nominalColumns = `id, coin_name, coin_quantity, price, created_at, updated_at`

func scanNominal(row scanner) (*model.Nominal, error) {
	var n model.Nominal
	err := row.Scan(&n.ID, &n.CoinName, &n.CoinQuantity, &n.Price, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNominal inserts a nominal.
func (r *CatalogRepository) CreateNominal(ctx context.Context, coinName string, coinQuantity int64, price decimal.Decimal) (*model.Nominal, error) {
	query := `
		INSERT INTO nominals (coin_name, coin_quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + nominalColumns

	n, err := scanNominal(r.pool.QueryRow(ctx, query, coinName, coinQuantity, price))
	if err != nil {
		return nil, fmt.Errorf("failed to create nominal: %w", err)
	}
	return n, nil
}

// GetNominal retrieves a nominal by ID.
// Returns ErrNominalNotFound if it does not exist.
func (r *CatalogRepository) GetNominal(ctx context.Context, id uuid.UUID) (*model.Nominal, error) {
	query := `SELECT ` + nominalColumns + ` FROM nominals WHERE id = $1`

	n, err := scanNominal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNominalNotFound
		}
		return nil, fmt.Errorf("failed to get nominal: %w", err)
	}
	return n, nil
}

// UpdateNominalPrice changes a nominal's price. Existing transactions keep the
// price captured in their snapshot.
func (r *CatalogRepository) UpdateNominalPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*model.Nominal, error) {
	query := `
		UPDATE nominals
		SET price = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + nominalColumns

	n, err := scanNominal(r.pool.QueryRow(ctx, query, id, price))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNominalNotFound
		}
		return nil, fmt.Errorf("failed to update nominal price: %w", err)
	}
	return n, nil
}

// ========== Payments ==========

// CreatePayment inserts a payment method.
func (r *CatalogRepository) CreatePayment(ctx context.Context, paymentType string) (*model.Payment, error) {
	const query = `
		INSERT INTO payments (type, status, created_at, updated_at)
		VALUES ($1, 'Y', NOW(), NOW())
		RETURNING id, type, status
	`

	var p model.Payment
	if err := r.pool.QueryRow(ctx, query, paymentType).Scan(&p.ID, &p.Type, &p.Status); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return &p, nil
}

// GetPayment retrieves a payment method by ID.
// Returns ErrPaymentNotFound if it does not exist.
func (r *CatalogRepository) GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	const query = `SELECT id, type, status FROM payments WHERE id = $1`

	var p model.Payment
	if err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Type, &p.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &p, nil
}

// ========== Banks ==========

// CreateBank inserts a destination bank account.
func (r *CatalogRepository) CreateBank(ctx context.Context, name, bankName, accountNumber string) (*model.Bank, error) {
	const query = `
		INSERT INTO banks (name, bank_name, account_number, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, bank_name, account_number
	`

	var b model.Bank
	err := r.pool.QueryRow(ctx, query, name, bankName, accountNumber).Scan(&b.ID, &b.Name, &b.BankName, &b.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to create bank: %w", err)
	}
	return &b, nil
}

// GetBank retrieves a bank by ID.
// Returns ErrBankNotFound if it does not exist.
func (r *CatalogRepository) GetBank(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	const query = `SELECT id, name, bank_name, account_number FROM banks WHERE id = $1`

	var b model.Bank
	if err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.BankName, &b.AccountNumber); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBankNotFound
		}
		return nil, fmt.Errorf("failed to get bank: %w", err)
	}
	return &b, nil
}

// ========== Users (voucher owners) ==========

// CreateUser inserts a back-office user that can own vouchers.
func (r *CatalogRepository) CreateUser(ctx context.Context, name, email, phoneNumber string) (*model.User, error) {
	const query = `
		INSERT INTO users (name, email, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, email, phone_number
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, name, email, phoneNumber).Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"voucher-topup-api/internal/model"
)

// VoucherRepository handles voucher persistence and relation loading.
type VoucherRepository struct {
	pool *pgxpool.Pool
}

// NewVoucherRepository creates a new VoucherRepository instance.
func NewVoucherRepository(pool *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{pool: pool}
}

// NewVoucher is the input for Create.
type NewVoucher struct {
	Name       string
	Status     string
	Thumbnail  string
	CategoryID *uuid.UUID
	UserID     *uuid.UUID
	NominalIDs []uuid.UUID
}

// Create inserts a voucher and links its nominals in one database transaction.
func (r *VoucherRepository) Create(ctx context.Context, in NewVoucher) (*model.Voucher, error) {
	status := in.Status
	if status == "" {
		status = model.VoucherStatusActive
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin voucher insert: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertVoucher = `
		INSERT INTO vouchers (name, status, thumbnail, category_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, name, status, thumbnail, category_id, user_id, created_at, updated_at
	`

	var v model.Voucher
	err = tx.QueryRow(ctx, insertVoucher, in.Name, status, in.Thumbnail, in.CategoryID, in.UserID).Scan(
		&v.ID,
		&v.Name,
		&v.Status,
		&v.Thumbnail,
		&v.CategoryID,
		&v.UserID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	const linkNominal = `
		INSERT INTO voucher_nominals (voucher_id, nominal_id, position)
		VALUES ($1, $2, $3)
	`
	for i, nominalID := range in.NominalIDs {
		if _, err := tx.Exec(ctx, linkNominal, v.ID, nominalID, i); err != nil {
			return nil, fmt.Errorf("failed to link nominal: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit voucher insert: %w", err)
	}

	v.NominalIDs = in.NominalIDs
	return &v, nil
}

const voucherWithRelations = `
	SELECT v.id, v.name, v.status, v.thumbnail, v.category_id, v.user_id, v.created_at, v.updated_at,
	       c.id, c.name, c.created_at, c.updated_at,
	       u.id, u.name, u.email, u.phone_number
	FROM vouchers v
	LEFT JOIN categories c ON c.id = v.category_id
	LEFT JOIN users u ON u.id = v.user_id
`

// scanVoucherWithRelations scans a row of voucherWithRelations, leaving
// Category and User nil when the join found nothing.
func scanVoucherWithRelations(row scanner) (*model.Voucher, error) {
	var (
		v            model.Voucher
		catID        *uuid.UUID
		catName      *string
		catCreatedAt *time.Time
		catUpdatedAt *time.Time
		userID       *uuid.UUID
		userName     *string
		userEmail    *string
		userPhone    *string
	)

	err := row.Scan(
		&v.ID, &v.Name, &v.Status, &v.Thumbnail, &v.CategoryID, &v.UserID, &v.CreatedAt, &v.UpdatedAt,
		&catID, &catName, &catCreatedAt, &catUpdatedAt,
		&userID, &userName, &userEmail, &userPhone,
	)
	if err != nil {
		return nil, err
	}

	if catID != nil {
		v.Category = &model.Category{
			ID:        *catID,
			Name:      deref(catName),
			CreatedAt: derefTime(catCreatedAt),
			UpdatedAt: derefTime(catUpdatedAt),
		}
	}
	if userID != nil {
		v.User = &model.User{
			ID:          *userID,
			Name:        deref(userName),
			Email:       deref(userEmail),
			PhoneNumber: deref(userPhone),
		}
	}

	return &v, nil
}

// GetWithRelations retrieves a voucher with its category and owner loaded.
// Returns ErrVoucherNotFound if it does not exist.
func (r *VoucherRepository) GetWithRelations(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	v, err := scanVoucherWithRelations(r.pool.QueryRow(ctx, voucherWithRelations+` WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVoucherNotFound
		}
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	return v, nil
}

// GetDetail retrieves a voucher with category, owner and nominals loaded.
// The owner is trimmed to id, name and phone number.
func (r *VoucherRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.Voucher, error) {
	v, err := r.GetWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}

	if v.User != nil {
		v.User.Email = ""
	}

	nominals, err := r.listNominals(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Nominals = nominals
	v.NominalIDs = make([]uuid.UUID, 0, len(nominals))
	for _, n := range nominals {
		v.NominalIDs = append(v.NominalIDs, n.ID)
	}

	return v, nil
}

// ListLanding returns every voucher with its category, newest first.
// Owners are not loaded.
func (r *VoucherRepository) ListLanding(ctx context.Context) ([]model.Voucher, error) {
	rows, err := r.pool.Query(ctx, voucherWithRelations+` ORDER BY v.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	vouchers := []model.Voucher{}
	for rows.Next() {
		v, err := scanVoucherWithRelations(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		v.User = nil
		vouchers = append(vouchers, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vouchers: %w", err)
	}

	return vouchers, nil
}

func (r *VoucherRepository) listNominals(ctx context.Context, voucherID uuid.UUID) ([]model.Nominal, error) {
	const query = `
		SELECT n.id, n.coin_name, n.coin_quantity, n.price, n.created_at, n.updated_at
		FROM voucher_nominals vn
		JOIN nominals n ON n.id = vn.nominal_id
		WHERE vn.voucher_id = $1
		ORDER BY vn.position
	`

	rows, err := r.pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list voucher nominals: %w", err)
	}
	defer rows.Close()

	nominals := []model.Nominal{}
	for rows.Next() {
		n, err := scanNominal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nominal: %w", err)
		}
		nominals = append(nominals, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nominals: %w", err)
	}

	return nominals, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

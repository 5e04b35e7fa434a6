package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"voucher-topup-api/internal/model"
)

// PlayerRepository handles player data persistence.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository instance.
func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

const playerColumns = `id, username, email, name, avatar, phone_number, created_at, updated_at`

func scanPlayer(row scanner) (*model.Player, error) {
	var p model.Player
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.Name,
		&p.Avatar,
		&p.PhoneNumber,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new player.
func (r *PlayerRepository) Create(ctx context.Context, p *model.Player) (*model.Player, error) {
	query := `
		INSERT INTO players (username, email, name, avatar, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + playerColumns

	created, err := scanPlayer(r.pool.QueryRow(ctx, query, p.Username, p.Email, p.Name, p.Avatar, p.PhoneNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return created, nil
}

// GetByID retrieves a player by ID.
// Returns ErrPlayerNotFound if the player does not exist.
func (r *PlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	p, err := scanPlayer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

// UpdateProfile applies the non-nil fields of u and returns the updated player.
// Returns ErrPlayerNotFound if the player does not exist.
func (r *PlayerRepository) UpdateProfile(ctx context.Context, id uuid.UUID, u model.ProfileUpdate) (*model.Player, error) {
	query := `
		UPDATE players
		SET name = COALESCE($2, name),
		    phone_number = COALESCE($3, phone_number),
		    avatar = COALESCE($4, avatar),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + playerColumns

	p, err := scanPlayer(r.pool.QueryRow(ctx, query, id, u.Name, u.PhoneNumber, u.Avatar))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player profile: %w", err)
	}
	return p, nil
}

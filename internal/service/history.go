package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/apperr"
)

// HistoryResult is a player's filtered history with the summed value.
type HistoryResult struct {
	Data  []model.Transaction `json:"data"`
	Total decimal.Decimal     `json:"total"`
}

// DashboardResult lists a player's transactions and their per-category totals.
type DashboardResult struct {
	Data  []model.Transaction   `json:"data"`
	Count []model.CategoryValue `json:"count"`
}

// HistoryService serves read views over a player's transactions.
type HistoryService struct {
	txs     TransactionStore
	catalog CatalogStore
}

// NewHistoryService creates a new HistoryService instance.
func NewHistoryService(txs TransactionStore, catalog CatalogStore) *HistoryService {
	return &HistoryService{txs: txs, catalog: catalog}
}

// History returns the player's transactions whose status contains status
// (case-insensitive; empty matches all) and their total value.
func (s *HistoryService) History(ctx context.Context, playerID uuid.UUID, status string) (*HistoryResult, error) {
	filter := model.TransactionFilter{Status: status, PlayerID: &playerID}

	data, err := s.txs.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.txs.SumValue(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &HistoryResult{Data: data, Total: total}, nil
}

// HistoryDetail returns one of the player's transactions. Records that do
// not exist or belong to another player are reported as "history not found".
func (s *HistoryService) HistoryDetail(ctx context.Context, playerID, id uuid.UUID) (*model.Transaction, error) {
	tx, err := s.txs.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if tx.PlayerID != playerID {
		return nil, apperr.NotFound("history")
	}
	return tx, nil
}

// Dashboard returns the player's transactions with their categories and the
// per-category value totals annotated with category names. Groups whose
// category no longer exists keep an empty name.
func (s *HistoryService) Dashboard(ctx context.Context, playerID uuid.UUID) (*DashboardResult, error) {
	groups, err := s.txs.SumByCategory(ctx, playerID)
	if err != nil {
		return nil, err
	}

	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	for i := range groups {
		if groups[i].CategoryID != nil {
			groups[i].Name = names[*groups[i].CategoryID]
		}
	}

	data, err := s.txs.ListByPlayerWithCategory(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return &DashboardResult{Data: data, Count: groups}, nil
}

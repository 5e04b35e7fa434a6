package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const historySheet = "History"

var historyHeader = []any{
	"Date", "Game", "Category", "Item", "Price", "Tax", "Value", "Status", "Payment", "Bank", "Account",
}

// ExportHistory writes the player's filtered history as an .xlsx workbook
// to w, followed by a total row.
func (s *HistoryService) ExportHistory(ctx context.Context, playerID uuid.UUID, status string, w io.Writer) error {
	result, err := s.History(ctx, playerID, status)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(historySheet, "A1", &historyHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for _, tx := range result.Data {
		topup := tx.HistoryVoucherTopup
		values := []any{
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
			topup.GameName,
			topup.Category,
			fmt.Sprintf("%d %s", topup.CoinQuantity, topup.CoinName),
			topup.Price.InexactFloat64(),
			tx.Tax.InexactFloat64(),
			tx.Value.InexactFloat64(),
			tx.Status,
			tx.HistoryPayment.Type,
			tx.HistoryPayment.BankName,
			tx.AccountUser,
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(historySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	totalLabel, _ := excelize.CoordinatesToCellName(6, row)
	totalValue, _ := excelize.CoordinatesToCellName(7, row)
	if err := f.SetCellValue(historySheet, totalLabel, "Total"); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}
	if err := f.SetCellValue(historySheet, totalValue, result.Total.InexactFloat64()); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

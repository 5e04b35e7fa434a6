// Package repository provides data access layer implementations.
package repository

import (
	"errors"
	"strings"
)

// Common errors for repository operations.
var (
	ErrVoucherNotFound     = errors.New("voucher not found")
	ErrNominalNotFound     = errors.New("nominal not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrBankNotFound        = errors.New("bank not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE
// wildcards in s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

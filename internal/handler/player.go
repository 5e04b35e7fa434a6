package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/apperr"
	"voucher-topup-api/internal/service"
)

const (
	avatarField     = "image"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CatalogReader serves the public catalog.
type CatalogReader interface {
	Landing(ctx context.Context) ([]model.Voucher, error)
	Detail(ctx context.Context, id uuid.UUID) (*model.Voucher, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// Checkouter creates transactions.
type Checkouter interface {
	Checkout(ctx context.Context, playerID uuid.UUID, in service.CheckoutInput) (*model.Transaction, error)
}

// HistoryReader serves a player's transaction views.
type HistoryReader interface {
	History(ctx context.Context, playerID uuid.UUID, status string) (*service.HistoryResult, error)
	HistoryDetail(ctx context.Context, playerID, id uuid.UUID) (*model.Transaction, error)
	Dashboard(ctx context.Context, playerID uuid.UUID) (*service.DashboardResult, error)
	ExportHistory(ctx context.Context, playerID uuid.UUID, status string, w io.Writer) error
}

// ProfileEditor reads and edits player profiles.
type ProfileEditor interface {
	Profile(p *model.Player) model.PlayerProfile
	EditProfile(ctx context.Context, playerID uuid.UUID, in service.ProfileInput, upload *service.AvatarUpload) (*model.PlayerSummary, error)
}

// PlayerHandler serves the /players routes.
type PlayerHandler struct {
	catalog        CatalogReader
	checkout       Checkouter
	history        HistoryReader
	profile        ProfileEditor
	maxUploadBytes int64
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(catalog CatalogReader, checkout Checkouter, history HistoryReader, profile ProfileEditor, maxUploadBytes int64) *PlayerHandler {
	return &PlayerHandler{
		catalog:        catalog,
		checkout:       checkout,
		history:        history,
		profile:        profile,
		maxUploadBytes: maxUploadBytes,
	}
}

// LandingPage lists every voucher with its category.
func (h *PlayerHandler) LandingPage(c *gin.Context) {
	vouchers, err := h.catalog.Landing(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vouchers)
}

// DetailPage returns one voucher with its nominals.
func (h *PlayerHandler) DetailPage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	voucher, err := h.catalog.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, voucher)
}

// Category lists every category.
func (h *PlayerHandler) Category(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Checkout creates a pending transaction for the current player.
func (h *PlayerHandler) Checkout(c *gin.Context) {
	player, ok := currentPlayer(c)
	if !ok {
		return
	}

	var in service.CheckoutInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, apperr.NewValidation("Checkout validation failed").
			Add("body", "format", err.Error(), nil).
			Err())
		return
	}

	tx, err := h.checkout.Checkout(c.Request.Context(), player.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// History lists the current player's transactions, optionally filtered by status.
func (h *PlayerHandler) History(c *gin.Context) {
	player, ok := currentPlayer(c)
	if !ok {
		return
	}

	result, err := h.history.History(c.Request.Context(), player.ID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HistoryDetail returns one of the current player's transactions.
func (h *PlayerHandler) HistoryDetail(c *gin.Context) {
	player, ok := currentPlayer(c)
	if !ok {
		return
	}

	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	tx, err := h.history.HistoryDetail(c.Request.Context(), player.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// ExportHistory downloads the current player's history as a spreadsheet.
func (h *PlayerHandler) ExportHistory(c *gin.Context) {
	player, ok := currentPlayer(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.history.ExportHistory(c.Request.Context(), player.ID, c.Query("status"), &buf); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("history-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Dashboard returns the current player's transactions and per-category totals.
func (h *PlayerHandler) Dashboard(c *gin.Context) {
	player, ok := currentPlayer(c)
	if !ok {
		return
	}

	result, err := h.history.Dashboard(c.Request.Context(), player.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Profile returns the current player's profile.
func (h *PlayerHandler) Profile(c *gin.Context) {
	player, ok := currentPlayer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.profile.Profile(player))
}

// EditProfile updates name and phone number and, when an "image" file is
// attached, replaces the avatar.
func (h *PlayerHandler) EditProfile(c *gin.Context) {
	player, ok := currentPlayer(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var in service.ProfileInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, apperr.NewValidation("Player validation failed").
			Add("body", "format", err.Error(), nil).
			Err())
		return
	}

	var upload *service.AvatarUpload
	fileHeader, err := c.FormFile(avatarField)
	switch {
	case err == nil:
		f, err := fileHeader.Open()
		if err != nil {
			respondError(c, &apperr.TransferError{Op: "open", Err: err})
			return
		}
		defer f.Close()
		upload = &service.AvatarUpload{Filename: fileHeader.Filename, Content: f}
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		respondError(c, &apperr.TransferError{Op: "receive", Err: err})
		return
	}

	summary, err := h.profile.EditProfile(c.Request.Context(), player.ID, in, upload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

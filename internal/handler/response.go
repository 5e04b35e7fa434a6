// Package handler provides the HTTP handlers of the player API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"voucher-topup-api/internal/middleware"
	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/apperr"
)

// respondError maps service errors to status codes:
// not found -> 404, validation -> 422, anything else -> 500.
func respondError(c *gin.Context, err error) {
	var (
		nf *apperr.NotFoundError
		ve *apperr.ValidationError
	)

	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"message": nf.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   1,
			"message": ve.Error(),
			"fields":  ve.Fields,
		})
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.NewValidation("Request validation failed").
			Add("id", "ObjectId", "id is not a valid id", raw).
			Err()
	}
	return id, nil
}

// currentPlayer returns the authenticated player, writing a 401 when absent.
func currentPlayer(c *gin.Context) (*model.Player, bool) {
	p, ok := middleware.CurrentPlayer(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized to access this resource"})
	}
	return p, ok
}

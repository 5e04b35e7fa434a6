// Package middleware provides the gin middleware shared by all routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"voucher-topup-api/internal/model"
	"voucher-topup-api/internal/pkg/auth"
)

// PlayerKey is the gin context key holding the authenticated *model.Player.
const PlayerKey = "player"

const unauthorizedMessage = "Not authorized to access this resource"

// TokenParser validates bearer tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// PlayerLoader loads the player a token refers to.
type PlayerLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Player, error)
}

// Auth rejects requests without a valid token for an existing player. The
// token is read from "Authorization: Bearer <token>" or the "token" query
// parameter. On success the player is stored under PlayerKey.
func Auth(tokens TokenParser, players PlayerLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("Rejected token")
			abortUnauthorized(c)
			return
		}

		player, err := players.GetByID(c.Request.Context(), claims.PlayerID)
		if err != nil {
			log.Debug().Err(err).Str("player_id", claims.PlayerID.String()).Msg("Token player not found")
			abortUnauthorized(c)
			return
		}

		c.Set(PlayerKey, player)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return c.Query("token")
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMessage})
}

// CurrentPlayer returns the player stored by Auth.
func CurrentPlayer(c *gin.Context) (*model.Player, bool) {
	v, ok := c.Get(PlayerKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*model.Player)
	return p, ok
}

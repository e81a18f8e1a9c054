package handlers

import (
	"net/http"
	"strings"

	"github.com/SentryPrime1/sentryprime-backend-clean/internal/auth"
	"github.com/SentryPrime1/sentryprime-backend-clean/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userContextKey = "current_user"

// AuthRequired validates the bearer token and resolves the owning user
// once per request. Handlers downstream read the same resolved User from
// the context instead of re-deriving it.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrTokenMissing.Error()})
			return
		}

		userID, err := h.tokens.ParseUserID(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		user, err := h.store.FindUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	val, _ := c.Get(userContextKey)
	user, _ := val.(*models.User)
	return user
}

// RequestID tags every request with a correlation id, echoed back in the
// response headers.
func (h *Handler) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

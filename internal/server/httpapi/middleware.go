package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/booktracker-app/server/internal/common"
)

// ctxKeyUserID is the gin context key under which the authenticated user id
// is stored by AuthMiddleware.
const ctxKeyUserID = "userID"

// AuthMiddleware validates the bearer access token and stores the subject id
// in the request context. Requests without a valid access token are rejected
// with 401 before reaching the handler.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
			return
		}

		userID, err := h.accounts.Authorize(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ctxKeyUserID, userID)
		c.Next()
	}
}

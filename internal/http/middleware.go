package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-platform/internal/domain"
)

// contextUserKey is where requireAuth stores the resolved user for
// downstream handlers.
const contextUserKey = "auth.user"

// requireAuth verifies the bearer token and re-resolves its subject
// against the user store before the handler runs. A missing, invalid
// or expired token, or a subject that no longer resolves, aborts the
// request with 401.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := h.tokens.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}

// currentUser returns the user attached by requireAuth. It must only
// be called from handlers behind that middleware.
func currentUser(c *gin.Context) *domain.User {
	return c.MustGet(contextUserKey).(*domain.User)
}

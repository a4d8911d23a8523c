package staff

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"medtriage-core/internal/app/config"
)

// TokenMiddleware protège les opérations de gestion de file (retrait,
// début et fin de traitement) par un jeton d'équipe soignante.
// Le jeton est transmis en clair dans X-Staff-Token et comparé au hash
// bcrypt configuré (STAFF_TOKEN_HASH).
type TokenMiddleware struct {
	config *config.Config
}

func NewTokenMiddleware(cfg *config.Config) *TokenMiddleware {
	return &TokenMiddleware{config: cfg}
}

// Handler middleware Gin de vérification du jeton
func (m *TokenMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenHash := m.config.Staff.TokenHash

		// En développement sans hash configuré, l'accès est ouvert
		if tokenHash == "" && m.config.IsDevelopment() {
			c.Next()
			return
		}

		token := c.GetHeader("X-Staff-Token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Jeton d'équipe requis",
				"details": map[string]interface{}{
					"code": "STAFF_TOKEN_REQUIRED",
				},
			})
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Jeton d'équipe invalide",
				"details": map[string]interface{}{
					"code": "STAFF_TOKEN_INVALID",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

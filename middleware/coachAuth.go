package middleware

import (
	"net/http"
	"strings"

	coachRepo "coachflow/database/repository/coach"
	"coachflow/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthCoachMiddleware validates the bearer token and resolves the acting
// coach, storing the ID in the context under "coachID".
func JWTAuthCoachMiddleware(coaches coachRepo.CoachRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		coachIDValue, err := utils.SubjectFromToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}

		// The subject must map to a known coach.
		if _, err := coaches.GetByID(coachIDValue); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown coach"})
			return
		}

		c.Set("coachID", coachIDValue)
		c.Next()
	}
}

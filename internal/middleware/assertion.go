package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AssertionMiddleware creates a Gin middleware handler that verifies the
// caller's capability assertion. The assertion is a signed JWT issued by the
// surrounding platform stating "this caller may act for these organizations";
// the ledger core verifies the signature and trusts the claims, it performs no
// authentication of its own. Role checks against the addressed organization
// happen in the service layer.
func AssertionMiddleware(signingSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(signingSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid assertion", "error", err)
			msg := "Invalid assertion"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Assertion has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Assertion not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || !token.Valid {
			logger.Warn("Invalid assertion claims")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid assertion"})
			return
		}
		userID := claims.Subject
		if userID == "" {
			logger.Error("Caller id (subject) missing from valid assertion")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid assertion claims"})
			return
		}

		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)
		enrichedLogger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("user_id", userID))
		c.Request = c.Request.WithContext(
			context.WithValue(ctxWithUser, loggerCtxKey, enrichedLogger))
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"ship_berth/internal/app/ds"
	"ship_berth/internal/app/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
	ContextClaims   = "claims"
)

// AuthMiddleware - проверка JWT из header или куки, сохранение пользователя в контексте
func AuthMiddleware(tokens *utils.TokenManager, revoked *utils.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or malformed Authorization header"})
			return
		}

		claims, err := tokens.ParseJWT(tokenStr)
		if err != nil {
			logrus.Warnf("auth: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		userID, err := utils.SubjectID(claims)
		if err != nil {
			logrus.Warnf("auth: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid user ID in token"})
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Redis unreachable: the signature is still valid, let it through
			logrus.Errorf("auth: revocation check failed: %v", err)
		}
		if isRevoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token has been revoked"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		return token, found && token != ""
	}
	if cookie, err := c.Cookie("jwt"); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// CurrentUserID returns the id put into the context by AuthMiddleware.
func CurrentUserID(c *gin.Context) (int, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	userID, ok := id.(int)
	return userID, ok
}

func CurrentClaims(c *gin.Context) (*ds.JWTClaims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*ds.JWTClaims)
	return claims, ok
}

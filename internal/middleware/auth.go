package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tanyourpeach/tan-scheduler/internal/auth"
	"github.com/tanyourpeach/tan-scheduler/internal/config"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextIsAdmin   = "isAdmin"
)

func parseToken(c *gin.Context, secret string) (*auth.Actor, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "missing_authorization_header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "invalid_authorization_header"
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, "invalid_token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "invalid_token_claims"
	}

	userID, ok := claims["sub"].(float64)
	if !ok {
		return nil, "invalid_token_payload"
	}
	email, _ := claims["email"].(string)
	isAdmin, _ := claims["isAdmin"].(bool)

	return &auth.Actor{
		UserID:  uint(userID),
		Email:   email,
		IsAdmin: isAdmin,
	}, ""
}

func setActor(c *gin.Context, actor *auth.Actor) {
	c.Set(ContextUserID, actor.UserID)
	c.Set(ContextUserEmail, actor.Email)
	c.Set(ContextIsAdmin, actor.IsAdmin)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, code := parseToken(c, cfg.JWTSecret)
		if actor == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code})
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

// OptionalAuth extracts the caller's identity when a token is supplied, but
// lets anonymous requests through. A token that is present but invalid is
// still rejected. Route policy decides what anonymous callers may do.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		actor, code := parseToken(c, cfg.JWTSecret)
		if actor == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code})
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_required"})
			return
		}
		c.Next()
	}
}

// ActorFrom rebuilds the caller's identity from the gin context. Returns nil
// for anonymous requests.
func ActorFrom(c *gin.Context) *auth.Actor {
	idVal, exists := c.Get(ContextUserID)
	if !exists {
		return nil
	}

	id, ok := idVal.(uint)
	if !ok {
		return nil
	}

	return &auth.Actor{
		UserID:  id,
		Email:   c.GetString(ContextUserEmail),
		IsAdmin: c.GetBool(ContextIsAdmin),
	}
}

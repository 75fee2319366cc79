package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/models"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer token issued by the LMS backend.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role"`
}

// ParseToken verifies an HS256 token and resolves the acting user.
func ParseToken(tokenString string, secret []byte) (models.CurrentUser, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.CurrentUser{}, err
	}
	if !token.Valid {
		return models.CurrentUser{}, errors.New("invalid or expired token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return models.CurrentUser{}, errors.New("token has no subject")
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.CurrentUser{}, err
	}
	return models.CurrentUser{
		ID:   models.ID(claims.Subject),
		Name: claims.Name,
		Role: role,
	}, nil
}

// AuthMiddleware resolves the CurrentUser once per request and forwards the
// raw token to every backend call made with the request context.
func AuthMiddleware(secret []byte, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "missing or invalid token",
				Code:    "unauthorized",
			})
			return
		}

		user, err := ParseToken(tokenString, secret)
		if err != nil {
			logger.DebugContext(c.Request.Context(), "Rejected bearer token", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "missing or invalid token",
				Code:    "unauthorized",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Set(userIDKey, user.ID)
		c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), tokenString))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"edupay/internal/domain/entities"
	"edupay/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

var errMissingSubject = errors.New("token has no subject")

// AuthRequired validates the HS256 bearer token issued by the identity
// service and stores the caller in the gin context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			abort(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing bearer token", http.StatusUnauthorized))
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			abort(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid token", http.StatusUnauthorized))
			return
		}

		userID, err := subject(claims)
		if err != nil {
			abort(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid token", http.StatusUnauthorized))
			return
		}
		role, _ := claims["role"].(string)

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, strings.ToLower(role))
		c.Next()
	}
}

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Requester(c).Role
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		abort(c, pkg.NewDomainErrorSimple("FORBIDDEN", "Forbidden", http.StatusForbidden))
	}
}

// Requester returns the authenticated caller set by AuthRequired.
func Requester(c *gin.Context) entities.Requester {
	return entities.Requester{
		UserID: c.GetString(ContextUserID),
		Role:   entities.Role(c.GetString(ContextUserRole)),
	}
}

func subject(claims jwt.MapClaims) (string, error) {
	for _, key := range []string{"sub", "user_id", "userId", "id"} {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v, nil
			}
		case float64:
			return fmt.Sprintf("%.0f", v), nil
		}
	}
	return "", errMissingSubject
}

func abort(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"smarthourly.com/smarthourly/core"
	hourly "smarthourly.com/smarthourly/hourly/core"
	"smarthourly.com/smarthourly/web/common"
)

// Context keys populated by Authentication.
const (
	ContextUserID = "uid"
	ContextName   = "name"
	ContextRole   = "role"
)

func parseJwt(tokenStr string, jwtSecret []byte) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
}

// Authentication checks for a valid Bearer token and stashes the caller's
// user id and display name in the gin context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		token, err := parseJwt(parts[1], jwtSecret)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if uid, ok := claims["uid"].(string); ok {
				c.Set(ContextUserID, uid)
			}
			if name, ok := claims["name"].(string); ok {
				c.Set(ContextName, name)
			}
		}

		c.Next()
	}
}

// RequireRole gates a route group on the caller's role. The role comes from
// the user_roles table on every request, so changing a user's role takes
// effect without re-issuing tokens. Users without a row count as operators.
func RequireRole(dm *core.DatabaseManager, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(ContextUserID)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("missing identity"))
			return
		}

		var role string
		err := dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
			var err error
			role, err = hourly.RoleOf(db, uid)
			return err
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Set(ContextRole, role)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("insufficient role"))
	}
}

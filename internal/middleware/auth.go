// ejournal/internal/middleware/auth.go

package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"ejournal/internal/cache"
	"ejournal/models"
)

// Ключи контекста, которые выставляет Auth.
const (
	CtxUserID     = "user_id"
	CtxLogin      = "login"
	CtxActiveRole = "active_role"
	CtxSchoolID   = "school_id"
	CtxClassID    = "class_id"
	CtxRoles      = "roles"
)

// AuthCookie is the session cookie carrying the JWT.
const AuthCookie = "auth_token"

// Auth authenticates the request: JWT from the session cookie (or a bearer
// header for API clients), then the user snapshot from the cache, falling
// back to the database on a miss. A stale token or a deleted user yields 401
// and clears the cookie; a database outage yields 503.
func Auth(db *gorm.DB, store *cache.Service, jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(AuthCookie)
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abortAuth(c, "Требуется вход в систему")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				abortAuth(c, "Некорректный заголовок Authorization")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			clearCookie(c)
			abortAuth(c, "Сессия истекла, войдите заново")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortAuth(c, "Некорректный токен")
			return
		}
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			abortAuth(c, "Некорректный токен")
			return
		}
		userID := uint(userIDFloat)

		if data, ok := store.GetUser(c.Request.Context(), userID); ok {
			setContextAndProceed(c, data)
			return
		}

		data, err := loadUserData(db, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				clearCookie(c)
				abortAuth(c, "Пользователь не найден")
				return
			}
			slog.Error("Не удалось загрузить данные пользователя", "error", err, "user_id", userID)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": "База данных временно недоступна"})
			return
		}

		store.SetUser(c.Request.Context(), data)
		setContextAndProceed(c, data)
	}
}

// loadUserData reads the snapshot the middleware caches: login, assignments
// and the active role. No active assignment is a valid state; access then
// degrades to the least-privileged menu.
func loadUserData(db *gorm.DB, userID uint) (*cache.UserData, error) {
	var user models.User
	if err := db.Preload("Roles").First(&user, userID).Error; err != nil {
		return nil, err
	}

	data := &cache.UserData{
		UserID: user.ID,
		Login:  user.Login,
	}
	for _, assignment := range user.Roles {
		data.Roles = append(data.Roles, assignment.Role)
		if assignment.IsActive {
			data.ActiveRole = assignment.Role
			data.SchoolID = assignment.SchoolID
			data.ClassID = assignment.ClassID
		}
	}
	return data, nil
}

func setContextAndProceed(c *gin.Context, data *cache.UserData) {
	c.Set(CtxUserID, data.UserID)
	c.Set(CtxLogin, data.Login)
	c.Set(CtxActiveRole, data.ActiveRole)
	if data.SchoolID != nil {
		c.Set(CtxSchoolID, *data.SchoolID)
	}
	if data.ClassID != nil {
		c.Set(CtxClassID, *data.ClassID)
	}
	c.Set(CtxRoles, data.Roles)
	c.Next()
}

// RequireRole allows the request only when the active role is one of the
// listed ones. Superadmin always passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		active := ActiveRole(c)
		if active == models.RoleSuperAdmin {
			c.Next()
			return
		}
		for _, r := range roles {
			if active == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Недостаточно прав для этого действия"})
	}
}

// ActiveRole returns the request's active role, "" when unset.
func ActiveRole(c *gin.Context) string {
	if v, ok := c.Get(CtxActiveRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// UserID returns the authenticated user's ID; 0 outside the auth group.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func clearCookie(c *gin.Context) {
	c.SetCookie(AuthCookie, "", -1, "/", "", false, true)
}

func abortAuth(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}

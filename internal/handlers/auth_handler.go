// ejournal/internal/handlers/auth_handler.go

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ejournal/internal/middleware"
	"ejournal/models"
)

type loginInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerInput struct {
	Login     string `json:"login" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Email     string `json:"email" binding:"required,email"`
	LastName  string `json:"lastName" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
}

// issueToken signs a session JWT and sets it as the auth cookie.
func (s *Server) issueToken(c *gin.Context, userID uint, role string) error {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(s.Cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Cfg.JWTKey)
	if err != nil {
		return err
	}
	c.SetCookie(middleware.AuthCookie, signed, int(s.Cfg.TokenTTL.Seconds()), "/", "", false, true)
	return nil
}

// Login проверяет логин и пароль и выдает сессионный токен.
func (s *Server) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Укажите логин и пароль")
		return
	}

	var user models.User
	if err := s.DB.Preload("Roles").Where("login = ?", input.Login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusUnauthorized, "Неверный логин или пароль")
			return
		}
		s.dbError(c, err, "")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Неверный логин или пароль")
		return
	}

	activeRole := ""
	for _, assignment := range user.Roles {
		if assignment.IsActive {
			activeRole = assignment.Role
			break
		}
	}
	// Нет активной роли — включаем роль по умолчанию.
	if activeRole == "" {
		for _, assignment := range user.Roles {
			if assignment.IsDefault {
				if err := s.activateRole(user.ID, assignment.ID); err != nil {
					s.dbError(c, err, "")
					return
				}
				activeRole = assignment.Role
				break
			}
		}
	}

	if err := s.issueToken(c, user.ID, activeRole); err != nil {
		slog.Error("Не удалось подписать токен", "error", err)
		fail(c, http.StatusInternalServerError, "Не удалось создать сессию")
		return
	}
	s.Cache.InvalidateUser(c.Request.Context(), user.ID)

	slog.Info("Пользователь вошел в систему", "user_id", user.ID, "role", activeRole)
	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"login":      user.Login,
		"activeRole": activeRole,
	})
}

// Register создает учетную запись. Роли назначает администратор позже;
// до этого пользователь видит минимальное меню.
func (s *Server) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте правильность заполнения формы")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Не удалось обработать пароль")
		return
	}

	user := models.User{
		Login:     input.Login,
		Password:  string(hashed),
		Email:     input.Email,
		LastName:  input.LastName,
		FirstName: input.FirstName,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		fail(c, http.StatusConflict, "Пользователь с таким логином или email уже существует")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "login": user.Login})
}

// Logout сбрасывает сессионную куку.
func (s *Server) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Вы вышли из системы"})
}

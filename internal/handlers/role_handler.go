// ejournal/internal/handlers/role_handler.go

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ejournal/internal/access"
	"ejournal/internal/middleware"
	"ejournal/models"
)

// MyRoles returns every role assignment of the current user.
func (s *Server) MyRoles(c *gin.Context) {
	userID := middleware.UserID(c)

	var assignments []models.UserRole
	if err := s.DB.Preload("School").Where("user_id = ?", userID).Order("id").Find(&assignments).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if assignments == nil {
		assignments = make([]models.UserRole, 0)
	}
	c.JSON(http.StatusOK, assignments)
}

type switchRoleInput struct {
	Role     string `json:"role" binding:"required"`
	SchoolID *uint  `json:"schoolId"`
}

// switchTargetQuery выбирает назначение для активации. Без schoolId у
// пользователя с одной ролью в нескольких школах берется самое раннее
// назначение, а не случайное.
func switchTargetQuery(db *gorm.DB, userID uint, input switchRoleInput) *gorm.DB {
	q := db.Where("user_id = ? AND role = ?", userID, input.Role)
	if input.SchoolID != nil {
		q = q.Where("school_id = ?", *input.SchoolID)
	}
	return q.Order("id")
}

// SwitchRole activates one of the user's role assignments. Exactly one
// assignment stays active; on any failure the prior role remains in force
// and the client keeps its old token.
func (s *Server) SwitchRole(c *gin.Context) {
	userID := middleware.UserID(c)

	var input switchRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Укажите роль для переключения")
		return
	}
	if !models.IsKnownRole(input.Role) {
		fail(c, http.StatusBadRequest, "Неизвестная роль: "+input.Role)
		return
	}

	var target models.UserRole
	if err := switchTargetQuery(s.DB, userID, input).First(&target).Error; err != nil {
		s.dbError(c, err, "У вас нет такой роли")
		return
	}

	if err := s.activateRole(userID, target.ID); err != nil {
		s.dbError(c, err, "")
		return
	}

	// Снимок в кэше устарел: следующий запрос перечитает роли из БД.
	s.Cache.InvalidateUser(c.Request.Context(), userID)

	if err := s.issueToken(c, userID, target.Role); err != nil {
		slog.Error("Не удалось переподписать токен после смены роли", "error", err, "user_id", userID)
		fail(c, http.StatusInternalServerError, "Не удалось обновить сессию")
		return
	}

	slog.Info("Пользователь сменил роль", "user_id", userID, "role", target.Role)
	c.JSON(http.StatusOK, gin.H{
		"activeRole": target.Role,
		"schoolId":   target.SchoolID,
	})
}

// activateRole deactivates every assignment of the user and activates the
// target one, atomically.
func (s *Server) activateRole(userID, assignmentID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserRole{}).
			Where("user_id = ?", userID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserRole{}).
			Where("id = ? AND user_id = ?", assignmentID, userID).
			Update("is_active", true).Error
	})
}

// Menu returns the sidebar items visible to the active role, in menu order.
func (s *Server) Menu(c *gin.Context) {
	c.JSON(http.StatusOK, access.VisibleItems(middleware.ActiveRole(c)))
}

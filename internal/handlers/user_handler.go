// ejournal/internal/handlers/user_handler.go

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ejournal/internal/journal"
	"ejournal/models"
)

// UserResponse is the API shape of a user. It exists so the password hash
// never leaks into a listing.
type UserResponse struct {
	ID        uint      `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

func userResponse(u models.User) UserResponse {
	var roleNames []string
	for _, r := range u.Roles {
		roleNames = append(roleNames, r.Role)
	}
	return UserResponse{
		ID:        u.ID,
		Login:     u.Login,
		Email:     u.Email,
		FullName:  journal.FullName(u),
		Phone:     u.Phone,
		Roles:     roleNames,
		CreatedAt: u.CreatedAt,
	}
}

type createUserInput struct {
	Login      string `json:"login" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	Email      string `json:"email" binding:"required,email"`
	LastName   string `json:"lastName" binding:"required"`
	FirstName  string `json:"firstName" binding:"required"`
	MiddleName string `json:"middleName"`
	Phone      string `json:"phone"`

	Assignments []assignmentInput `json:"assignments"`
}

type assignmentInput struct {
	Role      string `json:"role" binding:"required"`
	SchoolID  *uint  `json:"schoolId"`
	ClassID   *uint  `json:"classId"`
	IsDefault bool   `json:"isDefault"`
}

type updateUserInput struct {
	Email      string `json:"email" binding:"required,email"`
	LastName   string `json:"lastName" binding:"required"`
	FirstName  string `json:"firstName" binding:"required"`
	MiddleName string `json:"middleName"`
	Phone      string `json:"phone"`
	Password   string `json:"password"` // пусто — пароль не меняется

	Assignments []assignmentInput `json:"assignments"`
}

// userFilters сужает выборку по роли и классу через join на назначения.
// Применяется и к странице, и к подсчету, чтобы totalRows не расходился
// с отфильтрованным списком.
func userFilters(role string, classID *uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if role != "" {
			db = db.Joins("JOIN user_roles ON user_roles.user_id = users.id AND user_roles.deleted_at IS NULL").
				Where("user_roles.role = ?", role)
		}
		if classID != nil {
			db = db.Joins("JOIN user_roles r2 ON r2.user_id = users.id AND r2.deleted_at IS NULL").
				Where("r2.class_id = ?", *classID)
		}
		return db
	}
}

// ListUsers returns users with their role assignments. Filterable by role
// and classId (e.g. the roster of a class).
func (s *Server) ListUsers(c *gin.Context) {
	classID, ok := queryUint(c, "classId")
	if !ok {
		return
	}

	filters := userFilters(c.Query("role"), classID)
	query := s.DB.Preload("Roles").Order("last_name, first_name").Scopes(filters)

	var users []models.User
	if c.Query("all") == "true" {
		if err := query.Find(&users).Error; err != nil {
			s.dbError(c, err, "")
			return
		}
		out := make([]UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, userResponse(u))
		}
		c.JSON(http.StatusOK, gin.H{"data": out})
		return
	}

	var totalRows int64
	if err := s.DB.Model(&models.User{}).Scopes(filters).Count(&totalRows).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if err := query.Scopes(Paginate(c)).Find(&users).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse(u))
	}
	c.JSON(http.StatusOK, paginated(c, out, totalRows))
}

func (s *Server) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := s.DB.Preload("Roles").First(&user, id).Error; err != nil {
		s.dbError(c, err, "Пользователь не найден")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser creates an account together with its role assignments.
func (s *Server) CreateUser(c *gin.Context) {
	var input createUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные пользователя: "+err.Error())
		return
	}
	for _, a := range input.Assignments {
		if !models.IsKnownRole(a.Role) {
			fail(c, http.StatusBadRequest, "Неизвестная роль: "+a.Role)
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Не удалось обработать пароль")
		return
	}

	user := models.User{
		Login:      input.Login,
		Password:   string(hashed),
		Email:      input.Email,
		LastName:   input.LastName,
		FirstName:  input.FirstName,
		MiddleName: input.MiddleName,
		Phone:      input.Phone,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		for i, a := range input.Assignments {
			assignment := models.UserRole{
				UserID:    user.ID,
				Role:      a.Role,
				SchoolID:  a.SchoolID,
				ClassID:   a.ClassID,
				IsDefault: a.IsDefault,
				// Первая назначенная роль сразу активна.
				IsActive: i == 0,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		fail(c, http.StatusConflict, "Не удалось создать пользователя: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "login": user.Login})
}

// UpdateUser edits profile fields and replaces role assignments.
func (s *Server) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		s.dbError(c, err, "Пользователь не найден")
		return
	}

	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные пользователя: "+err.Error())
		return
	}
	for _, a := range input.Assignments {
		if !models.IsKnownRole(a.Role) {
			fail(c, http.StatusBadRequest, "Неизвестная роль: "+a.Role)
			return
		}
	}

	user.Email = input.Email
	user.LastName = input.LastName
	user.FirstName = input.FirstName
	user.MiddleName = input.MiddleName
	user.Phone = input.Phone
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Не удалось обработать пароль")
			return
		}
		user.Password = string(hashed)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if input.Assignments == nil {
			return nil
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		for i, a := range input.Assignments {
			assignment := models.UserRole{
				UserID:    user.ID,
				Role:      a.Role,
				SchoolID:  a.SchoolID,
				ClassID:   a.ClassID,
				IsDefault: a.IsDefault,
				IsActive:  i == 0,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.dbError(c, err, "")
		return
	}

	// Роли могли поменяться — сбрасываем снимок авторизации.
	s.Cache.InvalidateUser(c.Request.Context(), user.ID)
	c.JSON(http.StatusOK, gin.H{"id": user.ID})
}

func (s *Server) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result := s.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		s.dbError(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Пользователь не найден")
		return
	}
	s.Cache.InvalidateUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "Пользователь удален"})
}

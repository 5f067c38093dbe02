// ejournal/internal/handlers/school_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ejournal/models"
)

type schoolInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// ListSchools returns schools, paginated unless all=true.
func (s *Server) ListSchools(c *gin.Context) {
	var schools []models.School
	query := s.DB.Order("name")

	if c.Query("all") == "true" {
		if err := query.Find(&schools).Error; err != nil {
			s.dbError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, schools)
		return
	}

	var totalRows int64
	if err := s.DB.Model(&models.School{}).Count(&totalRows).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if err := query.Scopes(Paginate(c)).Find(&schools).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if schools == nil {
		schools = make([]models.School, 0)
	}
	c.JSON(http.StatusOK, paginated(c, schools, totalRows))
}

func (s *Server) GetSchool(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var school models.School
	if err := s.DB.First(&school, id).Error; err != nil {
		s.dbError(c, err, "Школа не найдена")
		return
	}
	c.JSON(http.StatusOK, school)
}

func (s *Server) CreateSchool(c *gin.Context) {
	var input schoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Укажите название школы")
		return
	}
	school := models.School{Name: input.Name, Address: input.Address, Phone: input.Phone, Email: input.Email}
	if err := s.DB.Create(&school).Error; err != nil {
		fail(c, http.StatusConflict, "Школа с таким названием уже существует")
		return
	}
	c.JSON(http.StatusCreated, school)
}

func (s *Server) UpdateSchool(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var school models.School
	if err := s.DB.First(&school, id).Error; err != nil {
		s.dbError(c, err, "Школа не найдена")
		return
	}
	var input schoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Укажите название школы")
		return
	}
	school.Name = input.Name
	school.Address = input.Address
	school.Phone = input.Phone
	school.Email = input.Email
	if err := s.DB.Save(&school).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, school)
}

func (s *Server) DeleteSchool(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result := s.DB.Delete(&models.School{}, id)
	if result.Error != nil {
		s.dbError(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Школа не найдена")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Школа удалена"})
}

// ejournal/internal/handlers/class_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ejournal/models"
)

// ListClasses returns classes, optionally filtered by schoolId.
func (s *Server) ListClasses(c *gin.Context) {
	schoolID, ok := queryUint(c, "schoolId")
	if !ok {
		return
	}

	query := s.DB.Preload("Subgroups").Order("grade_number, liter")
	if schoolID != nil {
		query = query.Where("school_id = ?", *schoolID)
	}

	var classes []models.Class
	if c.Query("all") == "true" {
		if err := query.Find(&classes).Error; err != nil {
			s.dbError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, classes)
		return
	}

	var totalRows int64
	countQuery := s.DB.Model(&models.Class{})
	if schoolID != nil {
		countQuery = countQuery.Where("school_id = ?", *schoolID)
	}
	if err := countQuery.Count(&totalRows).Error; err != nil {
		s.dbError(c, err, "")
		return
	}

	if err := query.Scopes(Paginate(c)).Find(&classes).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if classes == nil {
		classes = make([]models.Class, 0)
	}
	c.JSON(http.StatusOK, paginated(c, classes, totalRows))
}

func (s *Server) GetClass(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var class models.Class
	if err := s.DB.Preload("Subgroups.Students").First(&class, id).Error; err != nil {
		s.dbError(c, err, "Класс не найден")
		return
	}
	c.JSON(http.StatusOK, class)
}

func (s *Server) CreateClass(c *gin.Context) {
	var input models.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные класса: "+err.Error())
		return
	}
	class := models.Class{SchoolID: input.SchoolID, GradeNumber: input.GradeNumber, Liter: input.Liter}
	if err := s.DB.Create(&class).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, class)
}

func (s *Server) UpdateClass(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var class models.Class
	if err := s.DB.First(&class, id).Error; err != nil {
		s.dbError(c, err, "Класс не найден")
		return
	}
	var input models.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные класса: "+err.Error())
		return
	}
	class.SchoolID = input.SchoolID
	class.GradeNumber = input.GradeNumber
	class.Liter = input.Liter
	if err := s.DB.Save(&class).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, class)
}

func (s *Server) DeleteClass(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result := s.DB.Delete(&models.Class{}, id)
	if result.Error != nil {
		s.dbError(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Класс не найден")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Класс удален"})
}

type subgroupInput struct {
	ClassID    uint   `json:"classId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	StudentIDs []uint `json:"studentIds"`
}

// ListSubgroups returns the subgroups of a class with their rosters.
func (s *Server) ListSubgroups(c *gin.Context) {
	classID, ok := queryUint(c, "classId")
	if !ok {
		return
	}
	query := s.DB.Preload("Students")
	if classID != nil {
		query = query.Where("class_id = ?", *classID)
	}
	var subgroups []models.Subgroup
	if err := query.Order("name").Find(&subgroups).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if subgroups == nil {
		subgroups = make([]models.Subgroup, 0)
	}
	c.JSON(http.StatusOK, subgroups)
}

// CreateSubgroup creates a subgroup and assigns its roster in one transaction.
func (s *Server) CreateSubgroup(c *gin.Context) {
	var input subgroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные подгруппы: "+err.Error())
		return
	}

	subgroup := models.Subgroup{ClassID: input.ClassID, Name: input.Name}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&subgroup).Error; err != nil {
			return err
		}
		if len(input.StudentIDs) > 0 {
			var students []models.User
			if err := tx.Where("id IN ?", input.StudentIDs).Find(&students).Error; err != nil {
				return err
			}
			return tx.Model(&subgroup).Association("Students").Replace(students)
		}
		return nil
	})
	if err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, subgroup)
}

func (s *Server) DeleteSubgroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result := s.DB.Delete(&models.Subgroup{}, id)
	if result.Error != nil {
		s.dbError(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Подгруппа не найдена")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Подгруппа удалена"})
}

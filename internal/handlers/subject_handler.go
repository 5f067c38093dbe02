// ejournal/internal/handlers/subject_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ejournal/models"
)

type subjectInput struct {
	SchoolID uint   `json:"schoolId" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

func (s *Server) ListSubjects(c *gin.Context) {
	schoolID, ok := queryUint(c, "schoolId")
	if !ok {
		return
	}
	query := s.DB.Order("name")
	if schoolID != nil {
		query = query.Where("school_id = ?", *schoolID)
	}

	var subjects []models.Subject
	if err := query.Find(&subjects).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if subjects == nil {
		subjects = make([]models.Subject, 0)
	}
	c.JSON(http.StatusOK, subjects)
}

func (s *Server) CreateSubject(c *gin.Context) {
	var input subjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Укажите школу и название предмета")
		return
	}
	subject := models.Subject{SchoolID: input.SchoolID, Name: input.Name}
	if err := s.DB.Create(&subject).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (s *Server) UpdateSubject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var subject models.Subject
	if err := s.DB.First(&subject, id).Error; err != nil {
		s.dbError(c, err, "Предмет не найден")
		return
	}
	var input subjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Укажите школу и название предмета")
		return
	}
	subject.SchoolID = input.SchoolID
	subject.Name = input.Name
	if err := s.DB.Save(&subject).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, subject)
}

func (s *Server) DeleteSubject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result := s.DB.Delete(&models.Subject{}, id)
	if result.Error != nil {
		s.dbError(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Предмет не найден")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Предмет удален"})
}

// ejournal/internal/handlers/homework_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ejournal/internal/middleware"
	"ejournal/models"
)

// homeworkFilters ограничивает выборку классом и предметом. Один и тот же
// scope применяется и к странице, и к подсчету строк.
func homeworkFilters(classID, subjectID *uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if classID != nil {
			db = db.Where("class_id = ?", *classID)
		}
		if subjectID != nil {
			db = db.Where("subject_id = ?", *subjectID)
		}
		return db
	}
}

// ListHomework returns homework filtered by classId and subjectId, newest
// first.
func (s *Server) ListHomework(c *gin.Context) {
	classID, ok := queryUint(c, "classId")
	if !ok {
		return
	}
	subjectID, ok := queryUint(c, "subjectId")
	if !ok {
		return
	}

	filters := homeworkFilters(classID, subjectID)
	query := s.DB.Preload("Subject").Order("created_at DESC").Scopes(filters)

	var homework []models.Homework
	if c.Query("all") == "true" {
		if err := query.Find(&homework).Error; err != nil {
			s.dbError(c, err, "")
			return
		}
		c.JSON(http.StatusOK, homework)
		return
	}

	var totalRows int64
	if err := s.DB.Model(&models.Homework{}).Scopes(filters).Count(&totalRows).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if err := query.Scopes(Paginate(c)).Find(&homework).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if homework == nil {
		homework = make([]models.Homework, 0)
	}
	c.JSON(http.StatusOK, paginated(c, homework, totalRows))
}

func (s *Server) CreateHomework(c *gin.Context) {
	var input models.HomeworkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные задания: "+err.Error())
		return
	}
	dueDate, ok := parseDate(input.DueDate)
	if !ok {
		fail(c, http.StatusBadRequest, "Срок сдачи указывается в формате ГГГГ-ММ-ДД")
		return
	}

	homework := models.Homework{
		ClassID:    input.ClassID,
		SubjectID:  input.SubjectID,
		ScheduleID: input.ScheduleID,
		TeacherID:  middleware.UserID(c),
		Title:      input.Title,
		Content:    input.Content,
		DueDate:    dueDate,
	}
	if err := s.DB.Create(&homework).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, homework)
}

func (s *Server) UpdateHomework(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var homework models.Homework
	if err := s.DB.First(&homework, id).Error; err != nil {
		s.dbError(c, err, "Задание не найдено")
		return
	}

	var input models.HomeworkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные задания: "+err.Error())
		return
	}
	dueDate, okDate := parseDate(input.DueDate)
	if !okDate {
		fail(c, http.StatusBadRequest, "Срок сдачи указывается в формате ГГГГ-ММ-ДД")
		return
	}

	homework.ClassID = input.ClassID
	homework.SubjectID = input.SubjectID
	homework.ScheduleID = input.ScheduleID
	homework.Title = input.Title
	homework.Content = input.Content
	homework.DueDate = dueDate
	if err := s.DB.Save(&homework).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, homework)
}

func (s *Server) DeleteHomework(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result := s.DB.Delete(&models.Homework{}, id)
	if result.Error != nil {
		s.dbError(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Задание не найдено")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Задание удалено"})
}

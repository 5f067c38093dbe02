// ejournal/internal/handlers/grade_handler.go

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ejournal/internal/export"
	"ejournal/internal/journal"
	"ejournal/internal/middleware"
	"ejournal/models"
)

// gradeFilterFromQuery builds the aggregation filter from subjectId, from
// and to query parameters.
func gradeFilterFromQuery(c *gin.Context) (journal.GradeFilter, bool) {
	var f journal.GradeFilter

	subjectID, ok := queryUint(c, "subjectId")
	if !ok {
		return f, false
	}
	f.SubjectID = subjectID

	from, ok := parseDate(c.Query("from"))
	if !ok {
		fail(c, http.StatusBadRequest, "Дата указывается в формате ГГГГ-ММ-ДД")
		return f, false
	}
	to, okTo := parseDate(c.Query("to"))
	if !okTo {
		fail(c, http.StatusBadRequest, "Дата указывается в формате ГГГГ-ММ-ДД")
		return f, false
	}
	f.From = from
	f.To = to
	return f, true
}

// classGrades fetches the grades of every student of a class, optionally
// narrowed to a subject.
func (s *Server) classGrades(classID uint, subjectID *uint) ([]models.User, []models.Grade, error) {
	var students []models.User
	err := s.DB.Joins("JOIN user_roles ON user_roles.user_id = users.id AND user_roles.deleted_at IS NULL").
		Where("user_roles.role = ? AND user_roles.class_id = ?", models.RoleStudent, classID).
		Order("users.last_name, users.first_name").
		Find(&students).Error
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}

	var grades []models.Grade
	if len(ids) > 0 {
		query := s.DB.Where("student_id IN ?", ids)
		if subjectID != nil {
			query = query.Where("subject_id = ?", *subjectID)
		}
		if err := query.Order("created_at").Find(&grades).Error; err != nil {
			return nil, nil, err
		}
	}
	return students, grades, nil
}

// ListGrades returns grade records filtered by classId, subjectId and
// studentId.
func (s *Server) ListGrades(c *gin.Context) {
	classID, ok := queryUint(c, "classId")
	if !ok {
		return
	}
	subjectID, ok := queryUint(c, "subjectId")
	if !ok {
		return
	}
	studentID, ok := queryUint(c, "studentId")
	if !ok {
		return
	}

	query := s.DB.Preload("Subject")
	if subjectID != nil {
		query = query.Where("subject_id = ?", *subjectID)
	}
	if studentID != nil {
		query = query.Where("student_id = ?", *studentID)
	}
	if classID != nil {
		query = query.Joins("JOIN user_roles ON user_roles.user_id = grades.student_id AND user_roles.deleted_at IS NULL").
			Where("user_roles.role = ? AND user_roles.class_id = ?", models.RoleStudent, *classID)
	}

	var grades []models.Grade
	if err := query.Order("created_at").Find(&grades).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if grades == nil {
		grades = make([]models.Grade, 0)
	}
	c.JSON(http.StatusOK, grades)
}

// CreateGrade выставляет оценку. Шкала 1..5 проверяется на границе API.
func (s *Server) CreateGrade(c *gin.Context) {
	var input models.GradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные оценки: "+err.Error())
		return
	}

	grade := models.Grade{
		StudentID:  input.StudentID,
		SubjectID:  input.SubjectID,
		ScheduleID: input.ScheduleID,
		Value:      input.Value,
		GradeType:  input.GradeType,
		Comment:    input.Comment,
		TeacherID:  middleware.UserID(c),
	}
	if err := s.DB.Create(&grade).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, grade)
}

// UpdateGrade is the explicit-edit path; grades are otherwise immutable.
func (s *Server) UpdateGrade(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var grade models.Grade
	if err := s.DB.First(&grade, id).Error; err != nil {
		s.dbError(c, err, "Оценка не найдена")
		return
	}

	var patch struct {
		Value     *int    `json:"grade" binding:"omitempty,min=1,max=5"`
		GradeType *string `json:"gradeType" binding:"omitempty,oneof=classwork homework test exam project quarter_final"`
		Comment   *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные оценки: "+err.Error())
		return
	}
	if patch.Value != nil {
		grade.Value = *patch.Value
	}
	if patch.GradeType != nil {
		grade.GradeType = *patch.GradeType
	}
	if patch.Comment != nil {
		grade.Comment = patch.Comment
	}

	if err := s.DB.Save(&grade).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, grade)
}

func (s *Server) DeleteGrade(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result := s.DB.Delete(&models.Grade{}, id)
	if result.Error != nil {
		s.dbError(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Оценка не найдена")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Оценка удалена"})
}

// GradeSummary returns per-student averages for a class. A student without
// grades gets "—", never 0.
func (s *Server) GradeSummary(c *gin.Context) {
	classID, ok := queryUint(c, "classId")
	if !ok {
		return
	}
	if classID == nil {
		fail(c, http.StatusBadRequest, "Укажите classId")
		return
	}
	f, ok := gradeFilterFromQuery(c)
	if !ok {
		return
	}

	students, grades, err := s.classGrades(*classID, f.SubjectID)
	if err != nil {
		s.dbError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"classId":  *classID,
		"students": journal.Summarize(students, grades, f),
	})
}

// ExportGrades streams the class grade book as an xlsx workbook.
func (s *Server) ExportGrades(c *gin.Context) {
	classID, ok := queryUint(c, "classId")
	if !ok {
		return
	}
	if classID == nil {
		fail(c, http.StatusBadRequest, "Укажите classId")
		return
	}
	f, ok := gradeFilterFromQuery(c)
	if !ok {
		return
	}

	var class models.Class
	if err := s.DB.First(&class, *classID).Error; err != nil {
		s.dbError(c, err, "Класс не найден")
		return
	}

	students, grades, err := s.classGrades(*classID, f.SubjectID)
	if err != nil {
		s.dbError(c, err, "")
		return
	}

	title := fmt.Sprintf("%d%s", class.GradeNumber, class.Liter)
	file, err := export.BuildGradeBook(title, students, grades, f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Не удалось сформировать файл")
		return
	}

	filename := fmt.Sprintf("grades_%s_%s.xlsx", title, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		// Заголовки уже ушли клиенту, остаётся только залогировать.
		slog.Error("Не удалось записать файл в ответ", "error", err)
	}
}

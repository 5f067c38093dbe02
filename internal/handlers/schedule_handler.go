// ejournal/internal/handlers/schedule_handler.go

package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"ejournal/internal/timetable"
	"ejournal/models"
)

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validTime(s string) bool { return timeOfDay.MatchString(s) }

// parseDate parses "YYYY-MM-DD"; empty input is nil, not an error.
func parseDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// ListSchedules returns schedule entries filtered by classId, subjectId,
// teacherId and schoolId. Read-heavy: students, teachers and parents all
// poll this list.
func (s *Server) ListSchedules(c *gin.Context) {
	query := s.DB.Preload("Subject").Preload("Teacher").Preload("Subgroup")

	for param, column := range map[string]string{
		"classId":   "class_id",
		"subjectId": "subject_id",
		"teacherId": "teacher_id",
	} {
		id, ok := queryUint(c, param)
		if !ok {
			return
		}
		if id != nil {
			query = query.Where(column+" = ?", *id)
		}
	}
	if schoolID, ok := queryUint(c, "schoolId"); !ok {
		return
	} else if schoolID != nil {
		query = query.Joins("JOIN classes ON classes.id = schedules.class_id").
			Where("classes.school_id = ?", *schoolID)
	}

	var entries []models.Schedule
	if err := query.Order("day_of_week, start_time").Find(&entries).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if entries == nil {
		entries = make([]models.Schedule, 0)
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) scheduleFromInput(c *gin.Context) (*models.Schedule, bool) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Проверьте данные урока: "+err.Error())
		return nil, false
	}
	if !validTime(input.StartTime) || !validTime(input.EndTime) {
		fail(c, http.StatusBadRequest, "Время урока указывается в формате ЧЧ:ММ")
		return nil, false
	}
	scheduleDate, ok := parseDate(input.ScheduleDate)
	if !ok {
		fail(c, http.StatusBadRequest, "Дата урока указывается в формате ГГГГ-ММ-ДД")
		return nil, false
	}
	return &models.Schedule{
		ClassID:      input.ClassID,
		SubjectID:    input.SubjectID,
		TeacherID:    input.TeacherID,
		DayOfWeek:    input.DayOfWeek,
		ScheduleDate: scheduleDate,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Room:         input.Room,
		SubgroupID:   input.SubgroupID,
		Status:       models.LessonNotConducted,
	}, true
}

func (s *Server) CreateSchedule(c *gin.Context) {
	entry, ok := s.scheduleFromInput(c)
	if !ok {
		return
	}
	if err := s.DB.Create(entry).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateSchedule is a PATCH: only the fields present in the body change.
func (s *Server) UpdateSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var entry models.Schedule
	if err := s.DB.First(&entry, id).Error; err != nil {
		s.dbError(c, err, "Урок не найден")
		return
	}

	var patch struct {
		SubjectID    *uint   `json:"subjectId"`
		TeacherID    *uint   `json:"teacherId"`
		DayOfWeek    *int    `json:"dayOfWeek"`
		ScheduleDate *string `json:"scheduleDate"`
		StartTime    *string `json:"startTime"`
		EndTime      *string `json:"endTime"`
		Room         *string `json:"room"`
		SubgroupID   *uint   `json:"subgroupId"`
		Status       *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "Некорректное тело запроса")
		return
	}

	if patch.SubjectID != nil {
		entry.SubjectID = *patch.SubjectID
	}
	if patch.TeacherID != nil {
		entry.TeacherID = *patch.TeacherID
	}
	if patch.DayOfWeek != nil {
		if *patch.DayOfWeek < 1 || *patch.DayOfWeek > 7 {
			fail(c, http.StatusBadRequest, "День недели — число от 1 (понедельник) до 7")
			return
		}
		entry.DayOfWeek = *patch.DayOfWeek
	}
	if patch.ScheduleDate != nil {
		d, ok := parseDate(*patch.ScheduleDate)
		if !ok {
			fail(c, http.StatusBadRequest, "Дата урока указывается в формате ГГГГ-ММ-ДД")
			return
		}
		entry.ScheduleDate = d // пустая строка снимает привязку к дате
	}
	if patch.StartTime != nil {
		if !validTime(*patch.StartTime) {
			fail(c, http.StatusBadRequest, "Время урока указывается в формате ЧЧ:ММ")
			return
		}
		entry.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		if !validTime(*patch.EndTime) {
			fail(c, http.StatusBadRequest, "Время урока указывается в формате ЧЧ:ММ")
			return
		}
		entry.EndTime = *patch.EndTime
	}
	if patch.Room != nil {
		entry.Room = *patch.Room
	}
	if patch.SubgroupID != nil {
		entry.SubgroupID = patch.SubgroupID
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.LessonNotConducted, models.LessonConducted, models.LessonCancelled:
			entry.Status = *patch.Status
		default:
			fail(c, http.StatusBadRequest, "Неизвестный статус урока: "+*patch.Status)
			return
		}
	}

	if err := s.DB.Save(&entry).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) DeleteSchedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result := s.DB.Delete(&models.Schedule{}, id)
	if result.Error != nil {
		s.dbError(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Урок не найден")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Урок удален"})
}

// weekDay is one column of the week grid.
type weekDay struct {
	Date      string            `json:"date"`
	DayOfWeek int               `json:"dayOfWeek"`
	Lessons   []models.Schedule `json:"lessons"`
}

type slotView struct {
	SlotNumber int    `json:"slotNumber"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	Display    string `json:"display"`
}

// WeekSchedule returns the 7-day grid for a class: lessons bucketed by
// calendar day (a dated entry beats its day-of-week) and the slot table
// resolved for the class, overrides over school defaults.
func (s *Server) WeekSchedule(c *gin.Context) {
	classID, ok := queryUint(c, "classId")
	if !ok {
		return
	}
	if classID == nil {
		fail(c, http.StatusBadRequest, "Укажите classId")
		return
	}

	weekStart, ok := parseDate(c.Query("weekStart"))
	if !ok || weekStart == nil {
		fail(c, http.StatusBadRequest, "Укажите weekStart в формате ГГГГ-ММ-ДД")
		return
	}

	var class models.Class
	if err := s.DB.First(&class, *classID).Error; err != nil {
		s.dbError(c, err, "Класс не найден")
		return
	}

	var entries []models.Schedule
	if err := s.DB.Preload("Subject").Preload("Teacher").Preload("Subgroup").
		Where("class_id = ?", *classID).Find(&entries).Error; err != nil {
		s.dbError(c, err, "")
		return
	}

	var slotRows []models.LessonSlot
	if err := s.DB.Where("school_id = ? AND (class_id IS NULL OR class_id = ?)", class.SchoolID, *classID).
		Find(&slotRows).Error; err != nil {
		s.dbError(c, err, "")
		return
	}

	buckets := timetable.PartitionWeek(entries, *weekStart)
	table := timetable.NewSlotTable(slotRows)

	days := make([]weekDay, timetable.DaysPerWeek)
	maxSlot := 0
	for _, row := range slotRows {
		if row.SlotNumber > maxSlot {
			maxSlot = row.SlotNumber
		}
	}
	slots := make([]slotView, 0, maxSlot+1)
	for n := 0; n <= maxSlot; n++ {
		view := slotView{SlotNumber: n, Display: timetable.Dash}
		if r, ok := table.Resolve(n, *classID); ok {
			view.StartTime = r.Start
			view.EndTime = r.End
			view.Display = r.String()
		}
		slots = append(slots, view)
	}

	for d := 0; d < timetable.DaysPerWeek; d++ {
		date := weekStart.AddDate(0, 0, d)
		lessons := buckets[d]
		if lessons == nil {
			lessons = make([]models.Schedule, 0)
		}
		days[d] = weekDay{
			Date:      date.Format("2006-01-02"),
			DayOfWeek: timetable.ISOWeekday(date),
			Lessons:   lessons,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"weekStart": weekStart.Format("2006-01-02"),
		"days":      days,
		"slots":     slots,
	})
}

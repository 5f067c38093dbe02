// ejournal/internal/handlers/timeslot_handler.go

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ejournal/models"
)

// ClassTimeSlots returns the effective slot table of a class: school
// defaults merged with the class's own overrides.
func (s *Server) ClassTimeSlots(c *gin.Context) {
	classID, ok := pathID(c, "classId")
	if !ok {
		return
	}
	var class models.Class
	if err := s.DB.First(&class, classID).Error; err != nil {
		s.dbError(c, err, "Класс не найден")
		return
	}

	var rows []models.LessonSlot
	if err := s.DB.Where("school_id = ? AND (class_id IS NULL OR class_id = ?)", class.SchoolID, classID).
		Order("slot_number").Find(&rows).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if rows == nil {
		rows = make([]models.LessonSlot, 0)
	}
	c.JSON(http.StatusOK, rows)
}

// DefaultTimeSlots returns the school-wide default table.
func (s *Server) DefaultTimeSlots(c *gin.Context) {
	schoolID, ok := queryUint(c, "schoolId")
	if !ok {
		return
	}
	if schoolID == nil {
		fail(c, http.StatusBadRequest, "Укажите schoolId")
		return
	}

	var rows []models.LessonSlot
	if err := s.DB.Where("school_id = ? AND class_id IS NULL", *schoolID).
		Order("slot_number").Find(&rows).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if rows == nil {
		rows = make([]models.LessonSlot, 0)
	}
	c.JSON(http.StatusOK, rows)
}

// upsertSlot replaces the slot row for (schoolID, classID, slotNumber).
func (s *Server) upsertSlot(schoolID uint, classID *uint, input models.LessonSlotInput) (*models.LessonSlot, error) {
	var slot models.LessonSlot
	query := s.DB.Where("school_id = ? AND slot_number = ?", schoolID, *input.SlotNumber)
	if classID == nil {
		query = query.Where("class_id IS NULL")
	} else {
		query = query.Where("class_id = ?", *classID)
	}

	err := query.First(&slot).Error
	switch {
	case err == nil:
		slot.StartTime = input.StartTime
		slot.EndTime = input.EndTime
		return &slot, s.DB.Save(&slot).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		slot = models.LessonSlot{
			SchoolID:   schoolID,
			ClassID:    classID,
			SlotNumber: *input.SlotNumber,
			StartTime:  input.StartTime,
			EndTime:    input.EndTime,
		}
		return &slot, s.DB.Create(&slot).Error
	default:
		return nil, err
	}
}

// SetClassTimeSlot creates or replaces a class-specific slot override.
func (s *Server) SetClassTimeSlot(c *gin.Context) {
	classID, ok := pathID(c, "classId")
	if !ok {
		return
	}
	var class models.Class
	if err := s.DB.First(&class, classID).Error; err != nil {
		s.dbError(c, err, "Класс не найден")
		return
	}

	var input models.LessonSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Укажите номер урока и время: "+err.Error())
		return
	}
	if !validTime(input.StartTime) || !validTime(input.EndTime) {
		fail(c, http.StatusBadRequest, "Время урока указывается в формате ЧЧ:ММ")
		return
	}

	slot, err := s.upsertSlot(class.SchoolID, &class.ID, input)
	if err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, slot)
}

// SetDefaultTimeSlot creates or replaces a school-wide default slot.
func (s *Server) SetDefaultTimeSlot(c *gin.Context) {
	schoolID, ok := queryUint(c, "schoolId")
	if !ok {
		return
	}
	if schoolID == nil {
		fail(c, http.StatusBadRequest, "Укажите schoolId")
		return
	}

	var input models.LessonSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Укажите номер урока и время: "+err.Error())
		return
	}
	if !validTime(input.StartTime) || !validTime(input.EndTime) {
		fail(c, http.StatusBadRequest, "Время урока указывается в формате ЧЧ:ММ")
		return
	}

	slot, err := s.upsertSlot(*schoolID, nil, input)
	if err != nil {
		s.dbError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, slot)
}

// DeleteClassTimeSlot removes a class override; the class falls back to the
// school default for that slot.
func (s *Server) DeleteClassTimeSlot(c *gin.Context) {
	classID, ok := pathID(c, "classId")
	if !ok {
		return
	}
	// Нулевой урок — валидный номер, поэтому не pathID.
	slotNumber, err := strconv.Atoi(c.Param("slotNumber"))
	if err != nil || slotNumber < 0 {
		fail(c, http.StatusBadRequest, "Некорректный номер урока")
		return
	}

	result := s.DB.Where("class_id = ? AND slot_number = ?", classID, slotNumber).
		Delete(&models.LessonSlot{})
	if result.Error != nil {
		s.dbError(c, result.Error, "")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "Для этого урока нет переопределения")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Переопределение удалено"})
}

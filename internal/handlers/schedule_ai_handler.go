// ejournal/internal/handlers/schedule_ai_handler.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"

	"ejournal/models"
)

// extractJSON находит первую валидную JSON-структуру в ответе модели,
// вырезая её из markdown-блоков (```json ... ```) и прочего текстового
// "мусора".
func extractJSON(raw string) string {
	if jsonBlockStart := strings.Index(raw, "```json"); jsonBlockStart != -1 {
		raw = raw[jsonBlockStart+7:]
		if jsonBlockEnd := strings.Index(raw, "```"); jsonBlockEnd != -1 {
			raw = raw[:jsonBlockEnd]
		}
	} else if blockStart := strings.Index(raw, "```"); blockStart != -1 {
		raw = raw[blockStart+3:]
		if blockEnd := strings.Index(raw, "```"); blockEnd != -1 {
			raw = raw[:blockEnd]
		}
	}

	start := strings.Index(raw, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(raw, "}")
	if end == -1 || end < start {
		return ""
	}

	potentialJSON := raw[start : end+1]
	if json.Valid([]byte(potentialJSON)) {
		return potentialJSON
	}
	slog.Warn("AI response contained a malformed or incomplete JSON object.", "snippet", potentialJSON)
	return ""
}

// GenerateSchedule drafts a week of lessons for a class with Gemini. The
// draft is returned to the admin for review, nothing is persisted here.
func (s *Server) GenerateSchedule(c *gin.Context) {
	if s.Gemini == nil {
		fail(c, http.StatusServiceUnavailable, "Генерация расписания не настроена на этом сервере")
		return
	}

	classID, ok := queryUint(c, "classId")
	if !ok {
		return
	}
	if classID == nil {
		fail(c, http.StatusBadRequest, "Укажите classId")
		return
	}

	var class models.Class
	if err := s.DB.First(&class, *classID).Error; err != nil {
		s.dbError(c, err, "Класс не найден")
		return
	}

	var subjects []models.Subject
	if err := s.DB.Where("school_id = ?", class.SchoolID).Find(&subjects).Error; err != nil {
		s.dbError(c, err, "")
		return
	}
	if len(subjects) == 0 {
		fail(c, http.StatusBadRequest, "В школе не заведено ни одного предмета")
		return
	}

	prompt := schedulePrompt(class.GradeNumber, subjects)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 90*time.Second)
	defer cancel()

	iter := s.Gemini.GenerateContentStream(ctx, genai.Text(prompt))
	var fullResponse strings.Builder
	for {
		resp, err := iter.Next()
		if err != nil {
			if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "no more items in iterator") {
				break
			}
			slog.Error("Error during AI stream", "error", err)
			fail(c, http.StatusInternalServerError, "Не удалось получить расписание от ИИ")
			return
		}
		if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			for _, part := range resp.Candidates[0].Content.Parts {
				if txt, ok := part.(genai.Text); ok {
					fullResponse.WriteString(string(txt))
				}
			}
		}
	}

	cleanJSON := extractJSON(fullResponse.String())
	if cleanJSON == "" {
		slog.Error("AI returned invalid or incomplete data", "response", fullResponse.String())
		fail(c, http.StatusInternalServerError, "ИИ вернул некорректные данные. Попробуйте снова.")
		return
	}

	var draft map[string][]struct {
		LessonNumber int    `json:"lesson_number"`
		SubjectName  string `json:"subject_name"`
	}
	if err := json.Unmarshal([]byte(cleanJSON), &draft); err != nil {
		slog.Error("Failed to parse extracted JSON from AI", "json", cleanJSON, "error", err)
		fail(c, http.StatusInternalServerError, "Не удалось разобрать расписание от ИИ")
		return
	}
	if len(draft) == 0 {
		slog.Warn("AI JSON was valid but resulted in an empty schedule.", "json", cleanJSON)
		fail(c, http.StatusInternalServerError, "ИИ сгенерировал пустое расписание. Попробуйте снова.")
		return
	}

	// Отбрасываем предметы, которых нет в школе.
	subjectsByName := make(map[string]uint, len(subjects))
	for _, subj := range subjects {
		subjectsByName[subj.Name] = subj.ID
	}

	final := make(map[string][]gin.H)
	for day, lessons := range draft {
		var lessonList []gin.H
		for _, l := range lessons {
			subjectID, found := subjectsByName[l.SubjectName]
			if !found {
				slog.Warn("AI generated a subject that does not exist", "subjectName", l.SubjectName)
				continue
			}
			lessonList = append(lessonList, gin.H{
				"lesson_number": l.LessonNumber,
				"subject_id":    subjectID,
				"subject_name":  l.SubjectName,
			})
		}
		if len(lessonList) > 0 {
			final[day] = lessonList
		}
	}
	if len(final) == 0 {
		fail(c, http.StatusInternalServerError, "ИИ не смог составить расписание из доступных предметов.")
		return
	}

	c.JSON(http.StatusOK, final)
}

// schedulePrompt создает строгое задание для модели.
func schedulePrompt(gradeNumber int, availableSubjects []models.Subject) string {
	var subjectNames []string
	for _, s := range availableSubjects {
		subjectNames = append(subjectNames, `"`+s.Name+`"`)
	}
	subjectsString := strings.Join(subjectNames, ", ")

	return fmt.Sprintf(`
	**Задача**: Сгенерируй школьное расписание на неделю для %d класса в формате JSON.

	**Строгие правила**:
	1. **Только JSON**: ответ должен быть исключительно валидным JSON объектом, без текста до или после и без markdown-блоков.
	2. **Дни недели**: используй только ключи "Понедельник", "Вторник", "Среда", "Четверг", "Пятница".
	3. **Количество уроков**: в каждом дне от 5 до 7 уроков.
	4. **Список предметов**: в поле "subject_name" можно использовать ТОЛЬКО строки из списка: [%s]. Запрещено сокращать названия и придумывать предметы.
	5. **Сбалансированность**: сложные предметы не ставь первыми или последними уроками.

	**Структура JSON**:
	{
	  "Понедельник": [
		{ "lesson_number": 1, "subject_name": "Точное название из списка" }
	  ]
	}
	`, gradeNumber, subjectsString)
}

// ejournal/internal/handlers/schedule_ai_handler_test.go

package handlers

import (
	"strings"
	"testing"

	"ejournal/models"
)

func subjectList(names ...string) []models.Subject {
	subjects := make([]models.Subject, len(names))
	for i, n := range names {
		subjects[i] = models.Subject{Name: n}
	}
	return subjects
}

func TestExtractJSONFromMarkdownBlock(t *testing.T) {
	raw := "Вот расписание:\n```json\n{\"Понедельник\": []}\n```\nУдачи!"
	got := extractJSON(raw)
	if got != `{"Понедельник": []}` {
		t.Fatalf("extractJSON(%q) = %q", raw, got)
	}
}

func TestExtractJSONFromBareBlock(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	if got := extractJSON(raw); got != `{"a": 1}` {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONPlainObject(t *testing.T) {
	raw := `prefix {"a": {"b": 2}} suffix`
	if got := extractJSON(raw); got != `{"a": {"b": 2}}` {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		"никакого json здесь нет",
		"{обрыв",
		`{"truncated": `,
		"",
	} {
		if got := extractJSON(raw); got != "" {
			t.Errorf("extractJSON(%q) = %q, ожидали пустую строку", raw, got)
		}
	}
}

func TestSchedulePromptListsOnlyGivenSubjects(t *testing.T) {
	prompt := schedulePrompt(7, subjectList("Алгебра", "Физика"))
	if !strings.Contains(prompt, `"Алгебра", "Физика"`) {
		t.Fatalf("в промпте нет списка предметов:\n%s", prompt)
	}
	if !strings.Contains(prompt, "для 7 класса") {
		t.Fatalf("в промпте нет номера класса:\n%s", prompt)
	}
}

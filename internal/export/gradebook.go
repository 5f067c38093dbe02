// ejournal/internal/export/gradebook.go

// Package export renders journal data into Excel workbooks for download.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ejournal/internal/journal"
	"ejournal/models"
)

var gradeHeader = []string{"Ученик", "Оценки", "Количество", "Средний балл"}

// BuildGradeBook builds a one-sheet workbook with a row per student:
// the raw marks, their count, and the average (dash when none).
func BuildGradeBook(sheetTitle string, students []models.User, grades []models.Grade, f journal.GradeFilter) (*excelize.File, error) {
	file := excelize.NewFile()
	if err := file.SetSheetName("Sheet1", sheetTitle); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, _ := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for col, h := range gradeHeader {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := file.SetCellStr(sheetTitle, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(gradeHeader)) + "1"
	_ = file.SetCellStyle(sheetTitle, "A1", end, bold)
	_ = file.AutoFilter(sheetTitle, "A1:"+end, nil)

	summary := journal.Summarize(students, grades, f)
	for i, row := range summary {
		marks := marksFor(row.StudentID, grades, f)
		values := []string{row.FullName, strings.Join(marks, " "), strconv.Itoa(row.Count), row.Average}
		for c, v := range values {
			cell := fmt.Sprintf("%s%d", colName(c+1), i+2)
			if err := file.SetCellStr(sheetTitle, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	_ = file.SetColWidth(sheetTitle, "A", "A", 32)
	_ = file.SetColWidth(sheetTitle, "B", colName(len(gradeHeader)), 16)
	return file, nil
}

func marksFor(studentID uint, grades []models.Grade, f journal.GradeFilter) []string {
	var out []string
	for _, g := range grades {
		if g.StudentID == studentID && f.Matches(g) {
			out = append(out, strconv.Itoa(g.Value))
		}
	}
	return out
}

// colName converts a 1-based column index to the Excel letter form.
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}

// Package spreadsheet exports question lists as Excel workbooks.
package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of an .xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// QuestionHeaders are the column titles of the questions sheet.
var QuestionHeaders = []string{"id", "type", "stem", "options", "correct", "answer", "explanation", "source", "tags", "created_at"}

const questionSheet = "Questions"

// QuestionsWorkbook writes one row per question. Options are rendered one per
// line as "A. content".
func QuestionsWorkbook(questions []model.Question) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), questionSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range QuestionHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(questionSheet, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(questionSheet, 1, 1, style)
	}

	for i, q := range questions {
		row := i + 2
		values := []any{
			q.ID,
			deref(q.TypeName),
			q.Stem,
			optionLines(q.Options),
			correctLabels(q.Options),
			deref(q.Answer),
			deref(q.Explanation),
			deref(q.SourceName),
			tagNames(q.Tags),
			q.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(questionSheet, cell, v)
		}
	}
	_ = f.SetColWidth(questionSheet, "A", "B", 14)
	_ = f.SetColWidth(questionSheet, "C", "D", 48)
	_ = f.SetColWidth(questionSheet, "E", "J", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionLines(opts []model.Option) string {
	lines := make([]string, 0, len(opts))
	for _, o := range opts {
		lines = append(lines, o.OptLabel+". "+o.OptContent)
	}
	return strings.Join(lines, "\n")
}

func correctLabels(opts []model.Option) string {
	var labels []string
	for _, o := range opts {
		if o.IsCorrect {
			labels = append(labels, o.OptLabel)
		}
	}
	return strings.Join(labels, ", ")
}

func tagNames(tags []model.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.TagName)
	}
	return strings.Join(names, ", ")
}

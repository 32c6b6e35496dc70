package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestQuestionsWorkbook(t *testing.T) {
	typeName := "Single Choice"
	answer := "Mitochondria"
	questions := []model.Question{{
		ID:        7,
		TypeName:  &typeName,
		Stem:      "Which organelle makes ATP?",
		Answer:    &answer,
		CreatedAt: time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		Options: []model.Option{
			{OptLabel: "A", OptContent: "Nucleus"},
			{OptLabel: "B", OptContent: "Mitochondria", IsCorrect: true},
		},
		Tags: []model.Tag{{TagName: "cell"}, {TagName: "energy"}},
	}}

	data, err := QuestionsWorkbook(questions)
	if err != nil {
		t.Fatalf("QuestionsWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(questionSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if rows[0][2] != "stem" || len(rows[0]) != len(QuestionHeaders) {
		t.Errorf("header = %v", rows[0])
	}

	want := map[int]string{
		0: "7",
		1: "Single Choice",
		3: "A. Nucleus\nB. Mitochondria",
		4: "B",
		5: "Mitochondria",
		8: "cell, energy",
		9: "2024-03-01 08:30:00",
	}
	for col, v := range want {
		if rows[1][col] != v {
			t.Errorf("col %d = %q, want %q", col, rows[1][col], v)
		}
	}
}

func TestQuestionsWorkbook_Empty(t *testing.T) {
	data, err := QuestionsWorkbook(nil)
	if err != nil || len(data) == 0 {
		t.Fatalf("QuestionsWorkbook(nil) = %d bytes, %v", len(data), err)
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/biocomp/qbank-backend/internal/docx"
	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/paper"
	"github.com/google/uuid"
)

func newPaperFixture(t *testing.T) (*PaperService, *fakeDraftStore) {
	t.Helper()
	questions := newFakeQuestionStore()
	ctx := context.Background()
	for _, stem := range []string{"first", "second", "third"} {
		_, _ = questions.Create(ctx, &model.CreateQuestionRequest{
			TypeID:  1,
			Stem:    stem,
			Options: []model.OptionInput{{OptLabel: "A"}, {OptLabel: "B", IsCorrect: true}},
		})
	}
	materials := &fakeMaterialStore{materials: map[int]*model.Material{
		5: {ID: 5, Content: "passage", Questions: []model.Question{{ID: 50}, {ID: 51}, {ID: 52}}},
	}}
	drafts := &fakeDraftStore{}
	svc := NewPaperService(questions, materials, drafts, paper.Options{ScorePerItem: 10, DurationMinutes: 120}, time.Hour, testLog)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc, drafts
}

func TestPaperService_PreviewKeepsRequestOrder(t *testing.T) {
	svc, _ := newPaperFixture(t)

	doc, err := svc.Preview(context.Background(), &model.PaperRequest{
		Title:       "Mock",
		QuestionIDs: []int{3, 1},
		MaterialIDs: []int{5},
	})
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if doc.Header.TotalScore != 50 {
		t.Errorf("TotalScore = %d, want 50", doc.Header.TotalScore)
	}
	items := doc.Paper.Items
	if items[0].Content != "third" || items[1].Content != "first" || items[2].MaterialID != 5 {
		t.Errorf("order = %q, %q, %d", items[0].Content, items[1].Content, items[2].MaterialID)
	}
	if doc.AnswerKey.Items[0].Answer != "B" {
		t.Errorf("resolved answer = %q, want B", doc.AnswerKey.Items[0].Answer)
	}
}

func TestPaperService_Errors(t *testing.T) {
	svc, _ := newPaperFixture(t)
	ctx := context.Background()

	var ve *ValidationError
	if _, err := svc.Preview(ctx, &model.PaperRequest{}); !errors.As(err, &ve) {
		t.Errorf("empty selection error = %v", err)
	}
	if _, err := svc.Export(ctx, &model.PaperRequest{QuestionIDs: []int{1, 404}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing question error = %v", err)
	}
	if _, err := svc.Preview(ctx, &model.PaperRequest{MaterialIDs: []int{6}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing material error = %v", err)
	}
}

func TestPaperService_Export(t *testing.T) {
	svc, _ := newPaperFixture(t)

	file, err := svc.Export(context.Background(), &model.PaperRequest{Title: "Round 1/2", QuestionIDs: []int{1}})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if file.Filename != "Round 1_2.docx" {
		t.Errorf("Filename = %q", file.Filename)
	}
	if file.ContentType != docx.ContentType || len(file.Data) == 0 {
		t.Errorf("file = %s, %d bytes", file.ContentType, len(file.Data))
	}
}

func TestPaperService_Drafts(t *testing.T) {
	svc, drafts := newPaperFixture(t)
	ctx := context.Background()

	d, err := svc.SaveDraft(ctx, &model.PaperRequest{Title: "Draft", QuestionIDs: []int{2, 2, 1}})
	if err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	if d.ID == uuid.Nil || len(drafts.drafts) != 1 {
		t.Fatalf("draft not stored: %+v", d)
	}
	if !d.ExpiresAt.Equal(d.CreatedAt.Add(time.Hour)) {
		t.Errorf("ExpiresAt = %v, CreatedAt = %v", d.ExpiresAt, d.CreatedAt)
	}
	if len(d.QuestionIDs) != 2 {
		t.Errorf("QuestionIDs = %v, want deduplicated", d.QuestionIDs)
	}

	doc, err := svc.PreviewDraft(ctx, d.ID)
	if err != nil || doc.Header.Title != "Draft" || len(doc.Paper.Items) != 2 {
		t.Errorf("PreviewDraft() = %+v, %v", doc, err)
	}
	if _, err := svc.ExportDraft(ctx, d.ID); err != nil {
		t.Errorf("ExportDraft() = %v", err)
	}

	if err := svc.DeleteDraft(ctx, d.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetDraft(ctx, d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDraft(deleted) = %v", err)
	}
	if err := svc.DeleteDraft(ctx, d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteDraft(deleted) = %v", err)
	}
}

func TestPaperService_NonPositiveDraftTTL(t *testing.T) {
	drafts := &fakeDraftStore{}
	svc := NewPaperService(newFakeQuestionStore(), &fakeMaterialStore{}, drafts, paper.Options{}, 0, testLog)

	d, err := svc.SaveDraft(context.Background(), &model.PaperRequest{QuestionIDs: []int{1}})
	if err != nil {
		t.Fatalf("SaveDraft() error = %v", err)
	}
	if got := d.ExpiresAt.Sub(d.CreatedAt); got != DefaultDraftTTL {
		t.Errorf("draft lifetime = %v, want %v", got, DefaultDraftTTL)
	}
}

func TestPaperFilename(t *testing.T) {
	tests := map[string]string{
		"":                  "paper.docx",
		"  Mock Round  ":    "Mock Round.docx",
		`a/b\c:d*e?f"g<h>|`: "a_b_c_d_e_f_g_h__.docx",
	}
	for in, want := range tests {
		if got := paperFilename(in); got != want {
			t.Errorf("paperFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/repository"
)

func strp(s string) *string { return &s }

func TestQuestionService_CreateNormalizes(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewQuestionService(store, 100, testLog)
	zero := 0

	q, err := svc.Create(context.Background(), &model.CreateQuestionRequest{
		TypeID:      1,
		Stem:        "Which organelle makes ATP?",
		Answer:      strp(""),
		Explanation: strp("   "),
		SourceID:    &zero,
		Options:     []model.OptionInput{{OptLabel: "A"}, {OptLabel: "B", IsCorrect: true}},
		TagIDs:      []int{3, 1, 3},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if q.ID != 1 {
		t.Errorf("ID = %d", q.ID)
	}

	req := store.created[0]
	if req.Answer != nil || req.Explanation != nil || req.SourceID != nil {
		t.Errorf("blank optional fields must become NULL: %+v", req)
	}
	if fmt.Sprint(req.TagIDs) != "[3 1]" {
		t.Errorf("TagIDs = %v, want [3 1]", req.TagIDs)
	}
}

func TestQuestionService_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   model.CreateQuestionRequest
		field string
	}{
		{"missing type", model.CreateQuestionRequest{Stem: "x"}, "type_id"},
		{"blank stem", model.CreateQuestionRequest{TypeID: 1, Stem: "  "}, "stem"},
		{"duplicate label", model.CreateQuestionRequest{TypeID: 1, Stem: "x", Options: []model.OptionInput{{OptLabel: "A"}, {OptLabel: "A"}}}, "options[1].opt_label"},
		{"blank label", model.CreateQuestionRequest{TypeID: 1, Stem: "x", Options: []model.OptionInput{{OptLabel: " "}}}, "options[0].opt_label"},
		{"label too long", model.CreateQuestionRequest{TypeID: 1, Stem: "x", Options: []model.OptionInput{{OptLabel: "A"}, {OptLabel: "ABCDEFGHIJK"}}}, "options[1].opt_label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeQuestionStore()
			svc := NewQuestionService(store, 100, testLog)
			_, err := svc.Create(context.Background(), &tt.req)

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Create() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
			if len(store.created) != 0 {
				t.Error("store must not be called on invalid input")
			}
		})
	}
}

func TestQuestionService_CreateMapsForeignKey(t *testing.T) {
	store := newFakeQuestionStore()
	store.createErr = fmt.Errorf("insert tag 9: %w", repository.ErrReferenced)
	svc := NewQuestionService(store, 100, testLog)

	_, err := svc.Create(context.Background(), &model.CreateQuestionRequest{TypeID: 1, Stem: "x", TagIDs: []int{9}})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestQuestionService_Update(t *testing.T) {
	store := newFakeQuestionStore()
	svc := NewQuestionService(store, 100, testLog)
	ctx := context.Background()
	_, _ = svc.Create(ctx, &model.CreateQuestionRequest{TypeID: 1, Stem: "old", Answer: strp("A")})

	t.Run("sparse update", func(t *testing.T) {
		q, err := svc.Update(ctx, 1, &model.UpdateQuestionRequest{Stem: model.Some("new")})
		if err != nil {
			t.Fatal(err)
		}
		if q.Stem != "new" || q.Answer == nil || *q.Answer != "A" {
			t.Errorf("question = %+v", q)
		}
	})

	t.Run("blank answer clears", func(t *testing.T) {
		q, err := svc.Update(ctx, 1, &model.UpdateQuestionRequest{Answer: model.Some("")})
		if err != nil {
			t.Fatal(err)
		}
		if q.Answer != nil {
			t.Errorf("answer = %q, want nil", *q.Answer)
		}
	})

	t.Run("null stem rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, 1, &model.UpdateQuestionRequest{Stem: model.Null[string]()})
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "stem" {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("tag ids deduplicated", func(t *testing.T) {
		ids := []int{2, 2, 5}
		if _, err := svc.Update(ctx, 1, &model.UpdateQuestionRequest{TagIDs: &ids}); err != nil {
			t.Fatal(err)
		}
		last := store.updated[len(store.updated)-1]
		if fmt.Sprint(*last.TagIDs) != "[2 5]" {
			t.Errorf("TagIDs = %v", *last.TagIDs)
		}
	})

	t.Run("option label too long", func(t *testing.T) {
		calls := len(store.updated)
		opts := []model.OptionInput{{OptLabel: "ABCDEFGHIJK"}}
		_, err := svc.Update(ctx, 1, &model.UpdateQuestionRequest{Options: &opts})
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "options[0].opt_label" {
			t.Errorf("error = %v, want options[0].opt_label validation", err)
		}
		if len(store.updated) != calls {
			t.Error("store must not be called on invalid input")
		}
	})

	t.Run("missing question", func(t *testing.T) {
		_, err := svc.Update(ctx, 99, &model.UpdateQuestionRequest{Stem: model.Some("x")})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestQuestionService_DeleteNotFound(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionStore(), 100, testLog)
	if err := svc.Delete(context.Background(), 4); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() = %v, want ErrNotFound", err)
	}
}

func TestQuestionService_ListPagination(t *testing.T) {
	store := newFakeQuestionStore()
	store.total = 15
	svc := NewQuestionService(store, 100, testLog)
	ctx := context.Background()

	items, total, err := svc.List(ctx, model.QuestionFilter{}, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 15 || len(items) != 5 {
		t.Errorf("page 2 = %d items of %d, want 5 of 15", len(items), total)
	}
	if store.lastLimit != 10 || store.lastOff != 10 {
		t.Errorf("limit/offset = %d/%d", store.lastLimit, store.lastOff)
	}

	calls := store.listCalls
	items, _, err = svc.List(ctx, model.QuestionFilter{}, 5, 10)
	if err != nil || len(items) != 0 || store.listCalls != calls {
		t.Errorf("past the last page must short-circuit: %v %v", items, err)
	}

	calls = store.listCalls
	for _, bad := range [][2]int{{0, 10}, {1, 0}, {-1, 5}, {1 << 62, 4}, {3, math.MaxInt}} {
		if _, _, err := svc.List(ctx, model.QuestionFilter{}, bad[0], bad[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("List(page=%d, pageSize=%d) error = %v", bad[0], bad[1], err)
		}
	}
	if store.listCalls != calls {
		t.Errorf("rejected paging reached the store with offset %d", store.lastOff)
	}
}

func TestQuestionService_Export(t *testing.T) {
	store := newFakeQuestionStore()
	store.total = 3
	svc := NewQuestionService(store, 2, testLog)

	data, err := svc.Export(context.Background(), model.QuestionFilter{})
	if err != nil || len(data) == 0 {
		t.Fatalf("Export() = %d bytes, %v", len(data), err)
	}
	if store.lastLimit != 2 {
		t.Errorf("export must cap rows at 2, got limit %d", store.lastLimit)
	}
}

package model

import (
	"encoding/json"
	"testing"
)

func TestOptional_DistinguishesAbsentNullAndValue(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{"absent", `{}`, false, nil},
		{"null", `{"answer":null}`, true, nil},
		{"value", `{"answer":"B"}`, true, strPtr("B")},
		{"empty string", `{"answer":""}`, true, strPtr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateQuestionRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if req.Answer.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", req.Answer.Set, tt.wantSet)
			}
			switch {
			case tt.wantValue == nil && req.Answer.Value != nil:
				t.Errorf("Value = %q, want nil", *req.Answer.Value)
			case tt.wantValue != nil && (req.Answer.Value == nil || *req.Answer.Value != *tt.wantValue):
				t.Errorf("Value = %v, want %q", req.Answer.Value, *tt.wantValue)
			}
		})
	}
}

func TestOptional_ReplaceableChildren(t *testing.T) {
	var absent UpdateQuestionRequest
	if err := json.Unmarshal([]byte(`{"stem":"x"}`), &absent); err != nil {
		t.Fatal(err)
	}
	if absent.Options != nil || absent.TagIDs != nil {
		t.Error("options/tag_ids must stay nil when omitted")
	}

	var cleared UpdateQuestionRequest
	if err := json.Unmarshal([]byte(`{"options":[],"tag_ids":[]}`), &cleared); err != nil {
		t.Fatal(err)
	}
	if cleared.Options == nil || len(*cleared.Options) != 0 {
		t.Errorf("options = %v, want present and empty", cleared.Options)
	}
	if cleared.TagIDs == nil || len(*cleared.TagIDs) != 0 {
		t.Errorf("tag_ids = %v, want present and empty", cleared.TagIDs)
	}
}

func TestOptional_TypeMismatch(t *testing.T) {
	var req UpdateQuestionRequest
	if err := json.Unmarshal([]byte(`{"type_id":"two"}`), &req); err == nil {
		t.Fatal("expected error for string type_id")
	}
}

func strPtr(s string) *string { return &s }

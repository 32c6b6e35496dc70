package model

import "time"

// QuestionType is read-only reference data (single choice, short answer, ...).
type QuestionType struct {
	ID       int    `json:"id"`
	TypeName string `json:"type_name"`
}

// Source is the provenance label of a question or material.
type Source struct {
	ID         int       `json:"id"`
	SourceName string    `json:"source_name"`
	CreatedAt  time.Time `json:"created_at"`
	// QuestionCount is only filled by listings.
	QuestionCount int `json:"question_count,omitempty"`
}

// Tag is a knowledge-point label attached to questions.
type Tag struct {
	ID        int       `json:"id"`
	TagName   string    `json:"tag_name"`
	CreatedAt time.Time `json:"created_at"`
	// QuestionCount is only filled by listings.
	QuestionCount int `json:"question_count,omitempty"`
}

// SourceRequest is the payload for creating or renaming a source.
type SourceRequest struct {
	SourceName string `json:"source_name" binding:"required,notblank,max=255"`
}

// TagRequest is the payload for creating or renaming a tag.
type TagRequest struct {
	TagName string `json:"tag_name" binding:"required,notblank,max=100"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// PaperRequest selects the items of a paper. Order is preserved.
type PaperRequest struct {
	Title       string `json:"title" binding:"max=200"`
	Subtitle    string `json:"subtitle" binding:"max=200"`
	QuestionIDs []int  `json:"question_ids" binding:"omitempty,dive,min=1"`
	MaterialIDs []int  `json:"material_ids" binding:"omitempty,dive,min=1"`
}

// PaperDraft is a saved selection kept in the cache until it expires.
type PaperDraft struct {
	ID uuid.UUID `json:"id"`
	PaperRequest
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

package model

import "time"

// Material is a shared passage with an ordered set of sub-questions.
type Material struct {
	ID         int        `json:"id"`
	Title      *string    `json:"title"`
	Content    string     `json:"content"`
	SourceID   *int       `json:"source_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	SourceName *string    `json:"source_name"`
	Questions  []Question `json:"questions"`
}

// CreateMaterialRequest creates a material and all of its sub-questions.
// Sub-question order in Questions becomes sub_no 1..n.
type CreateMaterialRequest struct {
	Title     *string                 `json:"title" binding:"omitempty,max=255"`
	Content   string                  `json:"content" binding:"required,notblank"`
	SourceID  *int                    `json:"source_id"`
	Questions []CreateQuestionRequest `json:"questions" binding:"omitempty,dive"`
}

// UpdateMaterialRequest is a sparse update. When Questions is present the
// whole sub-question set is replaced; previous sub-question ids are dropped.
type UpdateMaterialRequest struct {
	Title     Optional[string]         `json:"title"`
	Content   Optional[string]         `json:"content"`
	SourceID  Optional[int]            `json:"source_id"`
	Questions *[]CreateQuestionRequest `json:"questions" binding:"omitempty,dive"`
}

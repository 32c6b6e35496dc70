package model

import "time"

// Question is a single bank item together with the children it owns.
// TypeName and SourceName come from left joins and may be absent.
type Question struct {
	ID          int       `json:"id"`
	TypeID      int       `json:"type_id"`
	Stem        string    `json:"stem"`
	Answer      *string   `json:"answer"`
	Explanation *string   `json:"explanation"`
	SourceID    *int      `json:"source_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	TypeName   *string  `json:"type_name"`
	SourceName *string  `json:"source_name"`
	Options    []Option `json:"options"`
	Tags       []Tag    `json:"tags"`
}

// Option is owned by its question and replaced wholesale on update.
type Option struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"question_id"`
	OptLabel   string `json:"opt_label"`
	OptContent string `json:"opt_content"`
	IsCorrect  bool   `json:"is_correct"`
	SortOrder  int    `json:"sort_order"`
}

// OptionInput is an option as sent by the client; stored verbatim.
type OptionInput struct {
	OptLabel   string `json:"opt_label" binding:"required,notblank,max=10"`
	OptContent string `json:"opt_content"`
	IsCorrect  bool   `json:"is_correct"`
	SortOrder  int    `json:"sort_order"`
}

// CreateQuestionRequest is the payload for creating a question, and the
// shape of each sub-question inside a material payload.
type CreateQuestionRequest struct {
	TypeID      int           `json:"type_id" binding:"required,min=1"`
	Stem        string        `json:"stem" binding:"required,notblank"`
	Answer      *string       `json:"answer"`
	Explanation *string       `json:"explanation"`
	SourceID    *int          `json:"source_id"`
	Options     []OptionInput `json:"options" binding:"omitempty,dive"`
	TagIDs      []int         `json:"tag_ids" binding:"omitempty,dive,min=1"`
}

// UpdateQuestionRequest is a sparse update: omitted fields are untouched.
// Options and TagIDs, when present, replace the existing set entirely.
type UpdateQuestionRequest struct {
	TypeID      Optional[int]    `json:"type_id"`
	Stem        Optional[string] `json:"stem"`
	Answer      Optional[string] `json:"answer"`
	Explanation Optional[string] `json:"explanation"`
	SourceID    Optional[int]    `json:"source_id"`
	Options     *[]OptionInput   `json:"options" binding:"omitempty,dive"`
	TagIDs      *[]int           `json:"tag_ids" binding:"omitempty,dive,min=1"`
}

// QuestionFilter narrows question listings. Zero values mean "no filter".
type QuestionFilter struct {
	TypeID         *int
	SourceID       *int
	TagIDs         []int
	Search         string
	StandaloneOnly bool
}

package model

// NameCount is one bucket of a grouped count.
type NameCount struct {
	ID    *int   `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// BankStats summarises the question bank for the dashboard.
type BankStats struct {
	TotalQuestions  int         `json:"total_questions"`
	TotalStandalone int         `json:"total_standalone"`
	TotalMaterials  int         `json:"total_materials"`
	TotalSources    int         `json:"total_sources"`
	TotalTags       int         `json:"total_tags"`
	QuestionsByType []NameCount `json:"questions_by_type"`
	QuestionsBySrc  []NameCount `json:"questions_by_source"`
}

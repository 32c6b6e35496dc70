// Package paper compiles selected questions and materials into a two-section
// exam document (paper and answer key) and lays it out for export.
//
// Compile is pure: it never touches storage and is safe for concurrent use.
package paper

import (
	"strconv"
	"strings"

	"github.com/biocomp/qbank-backend/internal/model"
)

// DefaultTitle is used when the caller supplies no title.
const DefaultTitle = "Biology Competition Paper"

// NoAnswer is the resolved answer of an item with no answer text and no
// option flagged correct.
const NoAnswer = "no answer available"

// Options tune scoring and the header; zero fields take the defaults.
type Options struct {
	ScorePerItem    int
	DurationMinutes int
}

func (o Options) withDefaults() Options {
	if o.ScorePerItem <= 0 {
		o.ScorePerItem = 10
	}
	if o.DurationMinutes <= 0 {
		o.DurationMinutes = 120
	}
	return o
}

type ItemKind string

const (
	KindQuestion ItemKind = "question"
	KindMaterial ItemKind = "material"
)

// Choice is an option as printed. Correct is only ever set in the answer key.
type Choice struct {
	Label   string `json:"label"`
	Content string `json:"content"`
	Correct bool   `json:"correct,omitempty"`
}

// Item is a numbered entry of a section. Material items carry their
// sub-questions in SubItems, numbered from 1 independently.
type Item struct {
	Number      int      `json:"number"`
	Label       string   `json:"label"`
	Kind        ItemKind `json:"kind"`
	QuestionID  int      `json:"question_id,omitempty"`
	MaterialID  int      `json:"material_id,omitempty"`
	TypeName    string   `json:"type_name,omitempty"`
	Score       int      `json:"score"`
	Title       string   `json:"title,omitempty"`
	Content     string   `json:"content"`
	Choices     []Choice `json:"choices,omitempty"`
	Answer      string   `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	SubItems    []Item   `json:"sub_items,omitempty"`
}

// Header is printed above the paper section.
type Header struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	TotalScore      int    `json:"total_score"`
	ItemCount       int    `json:"item_count"`
}

// Section is one half of the document.
type Section struct {
	Heading string `json:"heading"`
	Items   []Item `json:"items"`
}

// Document is the compiled paper.
type Document struct {
	Header    Header  `json:"header"`
	Paper     Section `json:"paper"`
	AnswerKey Section `json:"answer_key"`
}

// Compile numbers standalone questions 1..N in input order, then materials
// continuing from N+1. Every gradable item (standalone question or material
// sub-question) scores opts.ScorePerItem.
func Compile(questions []model.Question, materials []model.Material, title, subtitle string, opts Options) Document {
	opts = opts.withDefaults()
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	gradable := len(questions)
	for _, m := range materials {
		gradable += len(m.Questions)
	}

	doc := Document{
		Header: Header{
			Title:           title,
			Subtitle:        strings.TrimSpace(subtitle),
			DurationMinutes: opts.DurationMinutes,
			TotalScore:      gradable * opts.ScorePerItem,
			ItemCount:       gradable,
		},
		Paper:     Section{Heading: title, Items: []Item{}},
		AnswerKey: Section{Heading: title + " - Answers and Explanations", Items: []Item{}},
	}

	n := 0
	for _, q := range questions {
		n++
		doc.Paper.Items = append(doc.Paper.Items, questionItem(q, n, itemLabel(n), opts.ScorePerItem, false))
		doc.AnswerKey.Items = append(doc.AnswerKey.Items, questionItem(q, n, itemLabel(n), opts.ScorePerItem, true))
	}
	for _, m := range materials {
		n++
		doc.Paper.Items = append(doc.Paper.Items, materialItem(m, n, opts.ScorePerItem, false))
		doc.AnswerKey.Items = append(doc.AnswerKey.Items, materialItem(m, n, opts.ScorePerItem, true))
	}
	return doc
}

// ResolveAnswer returns the explicit answer when present, else the labels of
// the correct options joined by ", ", else NoAnswer.
func ResolveAnswer(q model.Question) string {
	if q.Answer != nil && strings.TrimSpace(*q.Answer) != "" {
		return *q.Answer
	}
	var labels []string
	for _, o := range q.Options {
		if o.IsCorrect {
			labels = append(labels, o.OptLabel)
		}
	}
	if len(labels) == 0 {
		return NoAnswer
	}
	return strings.Join(labels, ", ")
}

func questionItem(q model.Question, number int, label string, score int, withKey bool) Item {
	it := Item{
		Number:     number,
		Label:      label,
		Kind:       KindQuestion,
		QuestionID: q.ID,
		Score:      score,
		Content:    q.Stem,
	}
	if q.TypeName != nil {
		it.TypeName = *q.TypeName
	}
	for _, o := range q.Options {
		c := Choice{Label: o.OptLabel, Content: o.OptContent}
		if withKey {
			c.Correct = o.IsCorrect
		}
		it.Choices = append(it.Choices, c)
	}
	if withKey {
		it.Answer = ResolveAnswer(q)
		if q.Explanation != nil {
			it.Explanation = strings.TrimSpace(*q.Explanation)
		}
	}
	return it
}

func materialItem(m model.Material, number, score int, withKey bool) Item {
	it := Item{
		Number:     number,
		Label:      itemLabel(number),
		Kind:       KindMaterial,
		MaterialID: m.ID,
		Score:      len(m.Questions) * score,
		Title:      "Material",
		Content:    m.Content,
	}
	if m.Title != nil && strings.TrimSpace(*m.Title) != "" {
		it.Title = *m.Title
	}
	for i, q := range m.Questions {
		it.SubItems = append(it.SubItems, questionItem(q, i+1, subItemLabel(i+1), score, withKey))
	}
	return it
}

func itemLabel(n int) string    { return strconv.Itoa(n) + "." }
func subItemLabel(n int) string { return "(" + strconv.Itoa(n) + ")" }

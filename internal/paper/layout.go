package paper

import (
	"fmt"

	"github.com/biocomp/qbank-backend/internal/docx"
)

const (
	colorType     = "0066CC"
	colorMaterial = "FF6600"
	colorCorrect  = "00AA00"
	colorBlank    = "CCCCCC"

	answerBlank = "_________________________________"
)

// Layout renders doc into a document tree: the paper, a page break, then the
// answer key. Math markup is stripped to plain text.
func Layout(doc Document) *docx.Document {
	out := &docx.Document{}

	out.Add(docx.Paragraph{
		Runs:         []docx.Run{{Text: doc.Header.Title}},
		Style:        docx.StyleTitle,
		Align:        docx.AlignCenter,
		SpacingAfter: 400,
	})
	if doc.Header.Subtitle != "" {
		out.Add(docx.Paragraph{
			Runs:         []docx.Run{{Text: doc.Header.Subtitle}},
			Align:        docx.AlignCenter,
			SpacingAfter: 400,
		})
	}
	out.Add(
		docx.Paragraph{
			Runs: []docx.Run{
				{Text: "Name: _______________", Size: 24},
				{Text: "  Class: _______________", Size: 24},
				{Text: "  ID: _______________", Size: 24},
			},
			Align:        docx.AlignCenter,
			SpacingAfter: 200,
		},
		docx.Paragraph{
			Runs: []docx.Run{
				{Text: fmt.Sprintf("Time: %d minutes", doc.Header.DurationMinutes), Size: 24},
				{Text: fmt.Sprintf("  Total score: %d points", doc.Header.TotalScore), Size: 24},
			},
			Align:        docx.AlignCenter,
			SpacingAfter: 600,
		},
	)

	for _, it := range doc.Paper.Items {
		layoutItem(out, it, false)
	}
	out.Add(
		docx.Paragraph{Runs: []docx.Run{{Text: "------ End of paper ------"}}, Align: docx.AlignCenter, SpacingBefore: 600},
		docx.Paragraph{PageBreakBefore: true},
		docx.Paragraph{
			Runs:         []docx.Run{{Text: doc.AnswerKey.Heading}},
			Style:        docx.StyleTitle,
			Align:        docx.AlignCenter,
			SpacingAfter: 400,
		},
	)

	for _, it := range doc.AnswerKey.Items {
		layoutItem(out, it, true)
	}
	out.Add(docx.Paragraph{Runs: []docx.Run{{Text: "------ End of answers ------"}}, Align: docx.AlignCenter, SpacingBefore: 600})
	return out
}

func layoutItem(out *docx.Document, it Item, key bool) {
	if it.Kind == KindMaterial {
		out.Add(
			docx.Paragraph{
				Runs: []docx.Run{
					{Text: it.Label + " ", Bold: true, Size: 28},
					{Text: "[Material] ", Bold: true, Color: colorMaterial, Size: 24},
					{Text: fmt.Sprintf("(%d points)", it.Score), Size: 24},
				},
				SpacingBefore: 200,
				SpacingAfter:  200,
			},
			docx.Paragraph{Runs: []docx.Run{{Text: it.Title, Bold: true, Size: 20}}, SpacingAfter: 200},
			docx.Paragraph{Runs: []docx.Run{{Text: StripMath(it.Content)}}, SpacingAfter: 200},
		)
		for _, sub := range it.SubItems {
			layoutQuestion(out, sub, key, 24, 20)
		}
		return
	}
	layoutQuestion(out, it, key, 28, 24)
}

func layoutQuestion(out *docx.Document, it Item, key bool, numberSize, metaSize int) {
	typeName := it.TypeName
	if typeName == "" {
		typeName = "Question"
	}
	out.Add(
		docx.Paragraph{
			Runs: []docx.Run{
				{Text: it.Label + " ", Bold: true, Size: numberSize},
				{Text: "[" + typeName + "] ", Bold: true, Color: colorType, Size: metaSize},
				{Text: fmt.Sprintf("(%d points)", it.Score), Size: metaSize},
			},
			SpacingBefore: 200,
			SpacingAfter:  200,
		},
		docx.Paragraph{Runs: []docx.Run{{Text: StripMath(it.Content)}}, SpacingAfter: 200},
	)

	for _, c := range it.Choices {
		runs := []docx.Run{
			{Text: c.Label + ". ", Bold: true},
			{Text: StripMath(c.Content)},
		}
		if key && c.Correct {
			runs[0].Color = colorCorrect
			runs[1].Color = colorCorrect
			runs[1].Bold = true
			runs = append(runs, docx.Run{Text: " ✓ Correct", Bold: true, Color: colorCorrect})
		}
		out.Add(docx.Paragraph{Runs: runs, SpacingAfter: 100})
	}

	if !key {
		out.Add(
			docx.Paragraph{Runs: []docx.Run{{Text: "Answer:", Bold: true}}, SpacingBefore: 200, SpacingAfter: 200},
			docx.Paragraph{Runs: []docx.Run{{Text: answerBlank, Color: colorBlank}}, SpacingAfter: 400},
		)
		return
	}

	out.Add(docx.Paragraph{
		Runs: []docx.Run{
			{Text: "Answer: ", Bold: true, Color: colorCorrect},
			{Text: StripMath(it.Answer), Bold: true, Color: colorCorrect},
		},
		SpacingBefore: 200,
		SpacingAfter:  200,
	})
	if it.Explanation != "" {
		out.Add(
			docx.Paragraph{Runs: []docx.Run{{Text: "Explanation:", Bold: true, Color: colorType}}, SpacingBefore: 200, SpacingAfter: 200},
			docx.Paragraph{Runs: []docx.Run{{Text: StripMath(it.Explanation)}}, SpacingAfter: 400},
		)
	}
}

// Export lays out a compiled paper and renders it as .docx bytes.
func Export(doc Document) ([]byte, error) {
	return docx.Render(Layout(doc))
}

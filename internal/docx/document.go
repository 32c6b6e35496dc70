// Package docx writes a minimal WordprocessingML (.docx) package from a flat
// tree of paragraphs and runs. Only the formatting the paper layout needs is
// supported: title style, alignment, spacing, page breaks, bold, color, size.
package docx

// ContentType is the MIME type of a .docx package.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Alignment is a paragraph justification value.
type Alignment string

const AlignCenter Alignment = "center"

// StyleTitle is the paragraph style id registered in styles.xml.
const StyleTitle = "Title"

// Run is a span of uniformly formatted text. A "\n" in Text becomes a line
// break inside the paragraph.
type Run struct {
	Text  string
	Bold  bool
	Color string // hex RGB without '#', empty for automatic
	Size  int    // half-points, 0 for the style default
}

// Paragraph is one block of runs. Spacing is in twentieths of a point.
type Paragraph struct {
	Runs            []Run
	Style           string
	Align           Alignment
	SpacingBefore   int
	SpacingAfter    int
	PageBreakBefore bool
}

// Document is an ordered list of paragraphs rendered into a single section.
type Document struct {
	Paragraphs []Paragraph
}

// Add appends paragraphs to the document.
func (d *Document) Add(p ...Paragraph) {
	d.Paragraphs = append(d.Paragraphs, p...)
}

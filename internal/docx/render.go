package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Render serializes d into a .docx package.
func Render(d *Document) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Write(buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the .docx package for d to w.
func Write(w io.Writer, d *Document) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		body []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
	}

	body, err := marshalDocument(d)
	if err != nil {
		return err
	}
	parts = append(parts, struct {
		name string
		body []byte
	}{"word/document.xml", body})

	for _, p := range parts {
		fw, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.body); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

func marshalDocument(d *Document) ([]byte, error) {
	doc := xmlDocument{
		NSW: nsMain,
		NSR: nsRelationships,
		Body: xmlBody{
			SectPr: xmlSectPr{
				PgSz:  xmlPgSz{W: 11906, H: 16838},
				PgMar: xmlPgMar{Top: 1440, Right: 1440, Bottom: 1440, Left: 1440},
			},
		},
	}
	for _, p := range d.Paragraphs {
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, toXMLParagraph(p))
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func toXMLParagraph(p Paragraph) xmlParagraph {
	var xp xmlParagraph
	props := &xmlPPr{}
	hasProps := false
	if p.Style != "" {
		props.Style = &xmlVal{Val: p.Style}
		hasProps = true
	}
	if p.PageBreakBefore {
		props.PageBreakBefore = &xmlEmpty{}
		hasProps = true
	}
	if p.SpacingBefore > 0 || p.SpacingAfter > 0 {
		props.Spacing = &xmlSpacing{Before: p.SpacingBefore, After: p.SpacingAfter}
		hasProps = true
	}
	if p.Align != "" {
		props.Jc = &xmlVal{Val: string(p.Align)}
		hasProps = true
	}
	if hasProps {
		xp.Props = props
	}

	for _, r := range p.Runs {
		xp.Runs = append(xp.Runs, toXMLRuns(r)...)
	}
	return xp
}

// toXMLRuns splits r on newlines; every line after the first starts with a
// break.
func toXMLRuns(r Run) []xmlRun {
	var props *xmlRPr
	if r.Bold || r.Color != "" || r.Size > 0 {
		props = &xmlRPr{}
		if r.Bold {
			props.Bold = &xmlEmpty{}
		}
		if r.Color != "" {
			props.Color = &xmlVal{Val: r.Color}
		}
		if r.Size > 0 {
			props.Size = &xmlVal{Val: strconv.Itoa(r.Size)}
		}
	}

	lines := strings.Split(strings.ReplaceAll(r.Text, "\r\n", "\n"), "\n")
	runs := make([]xmlRun, 0, len(lines))
	for i, line := range lines {
		xr := xmlRun{Props: props, Text: xmlText{Value: line}}
		if i > 0 {
			xr.Break = &xmlEmpty{}
		}
		if line != strings.TrimSpace(line) {
			xr.Text.Space = "preserve"
		}
		runs = append(runs, xr)
	}
	return runs
}

// ─── WordprocessingML ──────────────────────────────────────────────────────

type xmlEmpty struct{}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"w:p"`
	SectPr     xmlSectPr      `xml:"w:sectPr"`
}

type xmlParagraph struct {
	Props *xmlPPr  `xml:"w:pPr,omitempty"`
	Runs  []xmlRun `xml:"w:r"`
}

// Element order follows CT_PPr.
type xmlPPr struct {
	Style           *xmlVal     `xml:"w:pStyle,omitempty"`
	PageBreakBefore *xmlEmpty   `xml:"w:pageBreakBefore,omitempty"`
	Spacing         *xmlSpacing `xml:"w:spacing,omitempty"`
	Jc              *xmlVal     `xml:"w:jc,omitempty"`
}

type xmlSpacing struct {
	Before int `xml:"w:before,attr,omitempty"`
	After  int `xml:"w:after,attr,omitempty"`
}

type xmlRun struct {
	Props *xmlRPr   `xml:"w:rPr,omitempty"`
	Break *xmlEmpty `xml:"w:br,omitempty"`
	Text  xmlText   `xml:"w:t"`
}

// Element order follows CT_RPr.
type xmlRPr struct {
	Bold  *xmlEmpty `xml:"w:b,omitempty"`
	Color *xmlVal   `xml:"w:color,omitempty"`
	Size  *xmlVal   `xml:"w:sz,omitempty"`
}

type xmlText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xmlSectPr struct {
	PgSz  xmlPgSz  `xml:"w:pgSz"`
	PgMar xmlPgMar `xml:"w:pgMar"`
}

type xmlPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type xmlPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
}

// ─── Static package parts ──────────────────────────────────────────────────

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:docDefaults>
    <w:rPrDefault><w:rPr><w:sz w:val="22"/></w:rPr></w:rPrDefault>
  </w:docDefaults>
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal">
    <w:name w:val="Normal"/>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Title">
    <w:name w:val="Title"/>
    <w:basedOn w:val="Normal"/>
    <w:next w:val="Normal"/>
    <w:qFormat/>
    <w:rPr><w:b/><w:sz w:val="40"/></w:rPr>
  </w:style>
</w:styles>`

package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// DOCXParser handles screenplays exported to Word documents. Paragraph text
// is extracted in order and handed to the Fountain line classifier; an
// empty paragraph becomes the blank line that terminates a dialogue block.
type DOCXParser struct{}

func (p *DOCXParser) Parse(content []byte) (*screenplay.Screenplay, error) {
	doc, err := docx.Parse(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		lines = append(lines, docxParagraphText(para))
	}

	return parseFountainLines(lines), nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// Package parser turns raw screenplay documents in any supported source
// format into the canonical screenplay model.
package parser

import (
	"fmt"

	"github.com/scriptmentor/scriptparse/internal/markup"
	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// Format identifies a screenplay source format.
type Format string

const (
	FormatFinalDraft Format = "final_draft"
	FormatFountain   Format = "fountain"
	FormatCeltx      Format = "celtx"
	FormatWriterDuet Format = "writerduet"

	// Container formats: text is extracted and run through the Fountain
	// line classifier.
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Parser converts raw document bytes into a canonical screenplay.
type Parser interface {
	Parse(content []byte) (*screenplay.Screenplay, error)
}

// UnsupportedFormatError reports an explicit format hint this service
// cannot handle. It is a hard failure, never recovered locally.
type UnsupportedFormatError struct {
	Hint string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Hint)
}

// ForHint returns the parser for an explicit format hint, wired with the
// accessor matching its dialect: the XML dialects get markup.StdXML so tags
// colliding with HTML raw-text elements keep their children, WriterDuet HTML
// gets markup.NetHTML.
func ForHint(hint string) (Parser, error) {
	switch hint {
	case "fdx":
		return &FinalDraftParser{Accessor: markup.StdXML{}}, nil
	case "fountain", "txt":
		return &FountainParser{}, nil
	case "celtx", "xml":
		return &CeltxParser{Accessor: markup.StdXML{}}, nil
	case "html":
		return &WriterDuetParser{Accessor: markup.NetHTML{}}, nil
	case "pdf":
		return &PDFParser{}, nil
	case "docx":
		return &DOCXParser{}, nil
	default:
		return nil, &UnsupportedFormatError{Hint: hint}
	}
}

// ForFormat returns the parser for a detected format.
func ForFormat(f Format) Parser {
	switch f {
	case FormatFinalDraft:
		return &FinalDraftParser{Accessor: markup.StdXML{}}
	case FormatCeltx:
		return &CeltxParser{Accessor: markup.StdXML{}}
	case FormatWriterDuet:
		return &WriterDuetParser{Accessor: markup.NetHTML{}}
	case FormatPDF:
		return &PDFParser{}
	case FormatDOCX:
		return &DOCXParser{}
	default:
		return &FountainParser{}
	}
}

// Parse is the main entry point: it selects a parser from the explicit hint,
// or from content detection when the hint is empty.
func Parse(content []byte, hint string) (*screenplay.Screenplay, error) {
	var p Parser
	if hint != "" {
		var err error
		p, err = ForHint(hint)
		if err != nil {
			return nil, err
		}
	} else {
		p = ForFormat(Detect(content))
	}
	return p.Parse(content)
}

package parser

import (
	"bytes"
	"strings"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// Detect sniffs raw content and picks a format. Checks run in strict
// priority order and the first match wins; inputs satisfying more than one
// check resolve by this order. Binary container magic is checked first
// since binary streams cannot be classified by text markers. The fallback
// is Fountain, the most permissive grammar.
func Detect(content []byte) Format {
	if bytes.HasPrefix(content, pdfMagic) {
		return FormatPDF
	}
	if bytes.HasPrefix(content, zipMagic) {
		return FormatDOCX
	}

	text := string(content)
	switch {
	case strings.Contains(text, "<FinalDraft"):
		return FormatFinalDraft
	case containsAny(text, "INT.", "EXT.", "FADE IN", "FADE OUT"):
		return FormatFountain
	case containsAny(text, "<celtx", "celtx:", "xmlns:cx", "www.celtx.com"):
		return FormatCeltx
	case isWriterDuetHTML(text):
		return FormatWriterDuet
	default:
		return FormatFountain
	}
}

func containsAny(text string, markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func isWriterDuetHTML(text string) bool {
	lower := strings.ToLower(text)
	if !containsAny(lower, "<html", "<div", "<p") {
		return false
	}
	return containsAny(lower, `class="page`, `class='page`, "screenplay")
}

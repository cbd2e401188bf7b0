package parser

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// PDFParser handles screenplays shared as PDF. Text rows are extracted per
// page and handed to the Fountain line classifier. It tries the Go library
// first, then falls back to pdftotext if enabled and available.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(content []byte) (*screenplay.Screenplay, error) {
	lines, err := extractPDFLines(content)
	if err != nil && p.FallbackPdftotext {
		lines, err = extractPdftotextLines(content)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return parseFountainLines(lines), nil
}

func extractPDFLines(content []byte) ([]string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	var lines []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			lines = append(lines, joinRowText(row.Content))
		}
		// Page boundary acts as a blank line.
		lines = append(lines, "")
	}
	return lines, nil
}

// joinRowText flattens one text row. Fragments within a row are separate
// draw operations, not separate words, so a space is inserted only when the
// next fragment starts past the previous one's right edge.
func joinRowText(content pdflib.TextHorizontal) string {
	var buf strings.Builder
	lastEnd := -1.0
	for _, frag := range content {
		if frag.S == "" {
			continue
		}
		if lastEnd >= 0 && frag.X-lastEnd > 0.5 {
			buf.WriteByte(' ')
		}
		buf.WriteString(frag.S)
		lastEnd = frag.X + frag.W
	}
	return strings.TrimSpace(buf.String())
}

func extractPdftotextLines(content []byte) ([]string, error) {
	tmp, err := os.CreateTemp("", "scriptparse-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.Command("pdftotext", "-layout", tmpPath, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return strings.Split(string(out), "\n"), nil
}

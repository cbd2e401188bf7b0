// Package report renders a human-readable coverage report for a parsed
// screenplay: Markdown for download, HTML for the browser.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/scriptmentor/scriptparse/internal/projector"
	"github.com/scriptmentor/scriptparse/internal/screenplay"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown builds the coverage report from the canonical model and its
// analysis projection.
func Markdown(doc *screenplay.Screenplay, a *projector.Analysis) string {
	var b strings.Builder

	title := doc.Metadata.Title
	if title == "" {
		title = "Untitled Screenplay"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if doc.Metadata.Author != "" {
		fmt.Fprintf(&b, "by %s\n\n", doc.Metadata.Author)
	}

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "- Scenes: %d\n", doc.SceneCount)
	fmt.Fprintf(&b, "- Characters: %d\n", doc.CharacterCount)
	fmt.Fprintf(&b, "- Dialogue blocks: %d\n", doc.DialogueCount)
	fmt.Fprintf(&b, "- Action blocks: %d\n", doc.ActionCount)
	fmt.Fprintf(&b, "- Words: %d (~%d pages)\n\n", doc.TotalWordCount, doc.EstimatedPages)

	if len(a.Characters) > 0 {
		b.WriteString("## Characters\n\n")
		b.WriteString("| Character | Scenes | Dialogue blocks |\n")
		b.WriteString("|---|---|---|\n")
		for _, c := range a.Characters {
			fmt.Fprintf(&b, "| %s | %d | %d |\n", c.Name, c.Appearances, c.DialogueCount)
		}
		b.WriteString("\n")
	}

	if len(a.Scenes) > 0 {
		b.WriteString("## Scenes\n\n")
		for _, s := range a.Scenes {
			fmt.Fprintf(&b, "### %s\n\n", s.Heading)
			fmt.Fprintf(&b, "- Dialogue blocks: %d\n", s.DialogueCount)
			fmt.Fprintf(&b, "- Dialogue/action word ratio: %s (%d/%d)\n\n",
				s.DialogueToActionRatio, s.DialogueWords, s.ActionWords)
		}
	}

	return b.String()
}

// HTML converts a Markdown report to an HTML fragment.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	md2html := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md2html.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

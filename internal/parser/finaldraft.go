package parser

import (
	"fmt"
	"strings"

	"github.com/scriptmentor/scriptparse/internal/markup"
	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// FinalDraftParser handles Final Draft (.fdx) XML documents. Paragraph
// elements carry a Type attribute that classifies each block.
type FinalDraftParser struct {
	Accessor markup.Accessor
}

func (p *FinalDraftParser) Parse(content []byte) (*screenplay.Screenplay, error) {
	if p.Accessor == nil {
		return nil, markup.ErrUnavailable
	}
	root, err := p.Accessor.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse final draft: %w", err)
	}

	doc := root.Find("finaldraft")
	if doc == nil {
		doc = root
	}
	// The script body is the first Content element; the title page carries
	// its own nested Content that must not leak into scenes.
	body := doc.Find("content")
	if body == nil {
		body = doc
	}

	ctx := newParseContext()
	for _, para := range body.FindAll("paragraph") {
		text := para.Text()
		if text == "" {
			continue
		}
		ctx.recordWords(text)

		switch strings.ToLower(para.Attr("type")) {
		case "scene heading":
			ctx.openScene(text)
		case "action", "general":
			ctx.addAction(text)
		case "character":
			ctx.addCharacter(text)
		case "parenthetical":
			ctx.addParenthetical(text)
		case "dialogue":
			ctx.addDialogue(text)
		case "transition":
			ctx.addTransition(text)
		}
	}

	return ctx.finish(), nil
}

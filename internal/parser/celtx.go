package parser

import (
	"fmt"

	"github.com/scriptmentor/scriptparse/internal/markup"
	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// CeltxParser handles Celtx XML documents, whose element names themselves
// classify each block.
type CeltxParser struct {
	Accessor markup.Accessor
}

func (p *CeltxParser) Parse(content []byte) (*screenplay.Screenplay, error) {
	if p.Accessor == nil {
		return nil, markup.ErrUnavailable
	}
	root, err := p.Accessor.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse celtx: %w", err)
	}

	ctx := newParseContext()
	if title := root.Find("title"); title != nil {
		if text := title.Text(); text != "" {
			ctx.doc.Metadata.Title = text
		}
	}

	root.Walk(func(n *markup.Node) bool {
		kind, ok := celtxTokenKind(n.Tag)
		if !ok {
			return true
		}
		text := n.Text()
		if text == "" {
			return false
		}
		ctx.recordWords(text)
		dispatchToken(ctx, kind, text)
		return false // classified elements own their subtree
	})

	return ctx.finish(), nil
}

func celtxTokenKind(tag string) (tokenKind, bool) {
	switch tag {
	case "sceneheading", "slugline":
		return tokenSceneHeading, true
	case "action":
		return tokenAction, true
	case "character":
		return tokenCharacter, true
	case "parenthetical", "paren":
		return tokenParenthetical, true
	case "dialog", "dialogue":
		return tokenDialogue, true
	case "transition":
		return tokenTransition, true
	}
	return 0, false
}

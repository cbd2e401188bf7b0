package parser

import (
	"fmt"

	"github.com/scriptmentor/scriptparse/internal/markup"
	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// WriterDuetParser handles WriterDuet HTML exports, where semantic CSS
// classes classify each block. Page and screenplay containers are purely
// structural and are recursed through.
type WriterDuetParser struct {
	Accessor markup.Accessor
}

func (p *WriterDuetParser) Parse(content []byte) (*screenplay.Screenplay, error) {
	if p.Accessor == nil {
		return nil, markup.ErrUnavailable
	}
	root, err := p.Accessor.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse writerduet: %w", err)
	}

	ctx := newParseContext()
	if title := root.Find("title"); title != nil {
		if text := title.Text(); text != "" {
			ctx.doc.Metadata.Title = text
		}
	}

	root.Walk(func(n *markup.Node) bool {
		switch n.Tag {
		case "script", "style", "head":
			return false
		}
		kind, ok := writerDuetTokenKind(n)
		if !ok {
			return true
		}
		text := n.Text()
		if text == "" {
			return false
		}
		ctx.recordWords(text)
		dispatchToken(ctx, kind, text)
		return false
	})

	return ctx.finish(), nil
}

func writerDuetTokenKind(n *markup.Node) (tokenKind, bool) {
	switch {
	case n.HasClass("scene-heading") || n.HasClass("sceneheading") || n.HasClass("slugline"):
		return tokenSceneHeading, true
	case n.HasClass("action"):
		return tokenAction, true
	case n.HasClass("character"):
		return tokenCharacter, true
	case n.HasClass("parenthetical"):
		return tokenParenthetical, true
	case n.HasClass("dialogue") || n.HasClass("dialog"):
		return tokenDialogue, true
	case n.HasClass("transition"):
		return tokenTransition, true
	}
	return 0, false
}

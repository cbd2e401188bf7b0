package parser

import "github.com/scriptmentor/scriptparse/internal/screenplay"

// parseContext is the mutable state every format parser threads through its
// token loop: the document under construction, the scene currently open,
// and the dialogue block currently accepting content. Structurally
// out-of-order tokens (action before any heading, dialogue with no cue) are
// dropped rather than rejected, to tolerate messy real-world scripts.
type parseContext struct {
	doc      *screenplay.Screenplay
	scene    *screenplay.Scene
	dialogue *screenplay.Dialogue
}

func newParseContext() *parseContext {
	return &parseContext{doc: screenplay.New()}
}

// recordWords adds a raw text unit to the running word total. Every
// non-empty unit counts the moment it is read, regardless of which (if any)
// branch consumes it, so the total reflects the literal token stream.
func (c *parseContext) recordWords(text string) {
	c.doc.TotalWordCount += screenplay.CountWords(text)
}

func (c *parseContext) openScene(heading string) {
	scene := screenplay.NewScene(heading)
	c.doc.Scenes = append(c.doc.Scenes, scene)
	c.scene = scene
	c.dialogue = nil
}

func (c *parseContext) addAction(text string) {
	if c.scene == nil {
		return
	}
	c.scene.Action = append(c.scene.Action, text)
	c.doc.ActionCount++
	c.dialogue = nil
}

func (c *parseContext) addCharacter(name string) {
	if c.scene == nil {
		return
	}
	name = NormalizeCharacterName(name)
	if name == "" {
		return
	}
	c.scene.Characters.Add(name)
	c.doc.Characters.Add(name)
	d := &screenplay.Dialogue{Character: name, Content: []string{}}
	c.scene.Dialogues = append(c.scene.Dialogues, d)
	c.dialogue = d
}

func (c *parseContext) addParenthetical(text string) {
	if c.dialogue == nil {
		return
	}
	c.dialogue.Parenthetical = text
}

func (c *parseContext) addDialogue(text string) {
	if c.dialogue == nil {
		return
	}
	c.dialogue.Content = append(c.dialogue.Content, text)
	c.doc.DialogueCount++
}

func (c *parseContext) addTransition(text string) {
	if c.scene == nil {
		return
	}
	c.scene.Notes = append(c.scene.Notes, screenplay.Note{
		Type: screenplay.NoteTransition,
		Text: text,
	})
}

// finish runs the document finalizer and hands the model off.
func (c *parseContext) finish() *screenplay.Screenplay {
	c.doc.Finalize()
	return c.doc
}

// tokenKind is the classification a format parser assigns to one text unit.
type tokenKind int

const (
	tokenSceneHeading tokenKind = iota + 1
	tokenAction
	tokenCharacter
	tokenParenthetical
	tokenDialogue
	tokenTransition
)

// dispatchToken applies the transition rule for a classified token. The
// rules are uniform across formats.
func dispatchToken(c *parseContext, kind tokenKind, text string) {
	switch kind {
	case tokenSceneHeading:
		c.openScene(text)
	case tokenAction:
		c.addAction(text)
	case tokenCharacter:
		c.addCharacter(text)
	case tokenParenthetical:
		c.addParenthetical(text)
	case tokenDialogue:
		c.addDialogue(text)
	case tokenTransition:
		c.addTransition(text)
	}
}

package parser

import (
	"regexp"
	"strings"

	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// FountainParser handles plain-text screenplays in Fountain convention,
// where line position and capitalization stand in for explicit markup.
type FountainParser struct{}

var (
	sceneHeadingRe = regexp.MustCompile(`^(INT|EXT|EST|INT/EXT|INT\./EXT|I/E)[./ ]`)
	transitionRe   = regexp.MustCompile(`^([A-Z][A-Z .]*TO:|FADE IN[:.]?|FADE OUT[:.]?|FADE TO BLACK[:.]?)$`)
	characterCueRe = regexp.MustCompile(`^[A-Z][A-Z0-9 .'\-]*(\([^)]*\))?$`)
	titlePageRe    = regexp.MustCompile(`^([A-Za-z][A-Za-z ]*):\s*(.+)$`)
)

func (p *FountainParser) Parse(content []byte) (*screenplay.Screenplay, error) {
	return parseFountainLines(strings.Split(string(content), "\n")), nil
}

// parseFountainLines classifies one line at a time and feeds the shared
// transition rules. The DOCX and PDF extractors reuse it on the line
// sequences they pull out of their containers.
func parseFountainLines(lines []string) *screenplay.Screenplay {
	ctx := newParseContext()
	inDialogue := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			// A blank line terminates the open dialogue block.
			inDialogue = false
			continue
		}
		ctx.recordWords(line)

		switch {
		case sceneHeadingRe.MatchString(line):
			ctx.openScene(line)
			inDialogue = false

		case transitionRe.MatchString(line):
			ctx.addTransition(line)
			inDialogue = false

		case strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")"):
			if inDialogue {
				ctx.addParenthetical(line)
			}
			// With no open dialogue the parenthetical is dropped.

		case isCharacterCue(line, ctx):
			ctx.addCharacter(line)
			inDialogue = true

		case ctx.scene == nil && titlePageRe.MatchString(line):
			m := titlePageRe.FindStringSubmatch(line)
			ctx.doc.Metadata.Set(strings.TrimSpace(m[1]), strings.TrimSpace(m[2]))

		case inDialogue:
			ctx.addDialogue(line)

		default:
			ctx.addAction(line)
		}
	}

	return ctx.finish()
}

// isCharacterCue applies the Fountain ambiguity tie-break: an all-caps line
// (optionally with a trailing extension like "(CONT'D)") only reads as a
// character cue once the current scene has accumulated at least one action
// or dialogue block. Earlier positions would be ambiguous with headings and
// upper-case action.
func isCharacterCue(line string, ctx *parseContext) bool {
	if !characterCueRe.MatchString(line) {
		return false
	}
	if ctx.scene == nil {
		return false
	}
	return len(ctx.scene.Action) > 0 || len(ctx.scene.Dialogues) > 0
}

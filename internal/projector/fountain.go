package projector

import (
	"sort"
	"strings"

	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// Fountain serializes the canonical model back to Fountain plain text. The
// export is best-effort and lossy: styling and extension metadata beyond
// the model is not round-tripped, and within a scene the action blocks come
// before the dialogue blocks.
func Fountain(doc *screenplay.Screenplay) string {
	var b strings.Builder

	wroteMeta := writeMetadata(&b, doc.Metadata)
	if wroteMeta {
		b.WriteString("\n")
	}

	for _, scene := range doc.Scenes {
		b.WriteString(scene.Heading)
		b.WriteString("\n\n")

		for _, action := range scene.Action {
			b.WriteString(action)
			b.WriteString("\n\n")
		}

		for _, d := range scene.Dialogues {
			b.WriteString(d.Character)
			b.WriteString("\n")
			if d.Parenthetical != "" {
				b.WriteString(d.Parenthetical)
				b.WriteString("\n")
			}
			for _, line := range d.Content {
				b.WriteString(line)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}

		for _, note := range scene.Notes {
			if note.Type == screenplay.NoteTransition {
				b.WriteString("> ")
				b.WriteString(note.Text)
				b.WriteString("\n\n")
			}
		}
	}

	out := strings.TrimRight(b.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func writeMetadata(b *strings.Builder, m screenplay.Metadata) bool {
	wrote := false
	writeLine := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
		wrote = true
	}

	// Title and author lead; the rest follow with capitalized keys.
	writeLine("Title", m.Title)
	writeLine("Author", m.Author)
	writeLine("Copyright", m.Copyright)
	writeLine("Created", m.Created)
	writeLine("Modified", m.Modified)

	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeLine(capitalize(k), m.Extra[k])
	}
	return wrote
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

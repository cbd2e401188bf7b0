package parser

import (
	"regexp"
	"strings"
)

// trailingPunct is the set of punctuation characters stripped from the end
// of a character cue (at most one occurrence).
const trailingPunct = ".,/#!$%^&*;:{}=-_`~()"

var extensionSpaceRe = regexp.MustCompile(`\s+\(`)

// NormalizeCharacterName cleans a raw character cue: surrounding whitespace
// is trimmed, a single trailing punctuation character is stripped, and
// whitespace before an opening parenthesis collapses to one space so
// speaker extensions like "(O.S.)" stay attached. A trailing ")" that
// closes an extension is kept. Case is preserved: names differing only in
// case are distinct identities.
func NormalizeCharacterName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	last := name[len(name)-1]
	if strings.IndexByte(trailingPunct, last) >= 0 {
		if !(last == ')' && strings.Contains(name, "(")) {
			name = strings.TrimSpace(name[:len(name)-1])
		}
	}
	return extensionSpaceRe.ReplaceAllString(name, " (")
}

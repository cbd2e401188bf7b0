package screenplay

// Screenplay is the canonical document model every format parser produces.
// Scenes, characters, and counters accumulate during a single parse call;
// Finalize computes the derived totals once all tokens are consumed.
type Screenplay struct {
	Metadata   Metadata `json:"metadata"`
	Scenes     []*Scene `json:"scenes"`
	Characters *NameSet `json:"characters"`

	DialogueCount  int `json:"dialogue_count"`
	ActionCount    int `json:"action_count"`
	TotalWordCount int `json:"total_word_count"`

	// Derived by Finalize.
	SceneCount     int `json:"scene_count"`
	CharacterCount int `json:"character_count"`
	EstimatedPages int `json:"estimated_pages"`
}

// New returns an empty screenplay ready to accumulate parse results.
func New() *Screenplay {
	return &Screenplay{
		Scenes:     []*Scene{},
		Characters: NewNameSet(),
		Metadata:   Metadata{Extra: map[string]string{}},
	}
}

// WordsPerPage is the standard screenplay approximation used to estimate
// page count from raw word count.
const WordsPerPage = 250

// Finalize computes scene_count, character_count, and estimated_pages from
// the accumulated state. It only reads the accumulators, so calling it more
// than once yields the same result.
func (s *Screenplay) Finalize() {
	s.SceneCount = len(s.Scenes)
	s.CharacterCount = s.Characters.Len()
	s.EstimatedPages = (s.TotalWordCount + WordsPerPage - 1) / WordsPerPage
}

// Metadata holds document-level fields common across formats. All fields
// are optional; format-specific extension keys land in Extra.
type Metadata struct {
	Title     string            `json:"title,omitempty"`
	Author    string            `json:"author,omitempty"`
	Copyright string            `json:"copyright,omitempty"`
	Created   string            `json:"created,omitempty"`
	Modified  string            `json:"modified,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// Set routes a key/value pair into the matching well-known field, or into
// Extra for format-specific keys. Keys are matched case-insensitively.
func (m *Metadata) Set(key, value string) {
	switch normalizeKey(key) {
	case "title":
		m.Title = value
	case "author", "authors", "writtenby":
		m.Author = value
	case "copyright":
		m.Copyright = value
	case "created":
		m.Created = value
	case "modified":
		m.Modified = value
	default:
		if m.Extra == nil {
			m.Extra = map[string]string{}
		}
		m.Extra[key] = value
	}
}

// Scene is a single slugline-delimited unit. The heading doubles as the
// scene identifier. A scene is mutated only until the next heading token.
type Scene struct {
	Heading    string      `json:"heading"`
	Action     []string    `json:"action"`
	Dialogues  []*Dialogue `json:"dialogues"`
	Characters *NameSet    `json:"characters"`
	Notes      []Note      `json:"notes,omitempty"`
}

func NewScene(heading string) *Scene {
	return &Scene{
		Heading:    heading,
		Action:     []string{},
		Dialogues:  []*Dialogue{},
		Characters: NewNameSet(),
	}
}

// Dialogue is one character cue with optional parenthetical direction and
// the raw content lines that followed it. Lines are joined by projectors,
// never by parsers.
type Dialogue struct {
	Character     string   `json:"character"`
	Parenthetical string   `json:"parenthetical,omitempty"`
	Content       []string `json:"content"`
}

// NoteType classifies a scene annotation.
type NoteType string

const NoteTransition NoteType = "transition"

// Note is a typed annotation attached to the scene that was active when it
// was encountered.
type Note struct {
	Type NoteType `json:"type"`
	Text string   `json:"text"`
}

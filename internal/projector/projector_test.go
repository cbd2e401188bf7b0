package projector

import (
	"strings"
	"testing"

	"github.com/scriptmentor/scriptparse/internal/parser"
	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

func sampleDoc(t *testing.T) *screenplay.Screenplay {
	t.Helper()
	src := strings.Join([]string{
		"Title: Gravity Well",
		"",
		"INT. LAB - NIGHT",
		"",
		"Machines hum.",
		"",
		"Vance checks a dial.",
		"",
		"VANCE",
		"(whispering)",
		"It works.",
		"It really works.",
		"",
		"CUT TO:",
		"",
		"EXT. STREET - DAY",
		"",
		"Rain falls.",
		"",
		"VANCE",
		"Told you.",
	}, "\n")
	doc, err := parser.Parse([]byte(src), "fountain")
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestWeb(t *testing.T) {
	view := Web(sampleDoc(t))

	if view.Title != "Gravity Well" {
		t.Errorf("expected title carried over, got %q", view.Title)
	}
	if len(view.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(view.Scenes))
	}

	first := view.Scenes[0]
	if first.ID != "scene-1" || view.Scenes[1].ID != "scene-2" {
		t.Errorf("expected positional ids, got %q %q", first.ID, view.Scenes[1].ID)
	}
	if first.Action != "Machines hum.\n\nVance checks a dial." {
		t.Errorf("expected action blocks joined by blank line, got %q", first.Action)
	}
	if len(first.Dialogues) != 1 {
		t.Fatalf("expected 1 dialogue, got %d", len(first.Dialogues))
	}
	d := first.Dialogues[0]
	if d.Text != "It works. It really works." {
		t.Errorf("expected content lines joined by spaces, got %q", d.Text)
	}
	if d.Parenthetical != "(whispering)" {
		t.Errorf("expected parenthetical carried, got %q", d.Parenthetical)
	}
}

func TestWeb_EmptyDocument(t *testing.T) {
	view := Web(screenplay.New())
	if view.Scenes == nil || len(view.Scenes) != 0 {
		t.Errorf("expected empty non-nil scenes, got %v", view.Scenes)
	}
}

func TestAnalyze(t *testing.T) {
	a := Analyze(sampleDoc(t))

	if len(a.Characters) != 1 {
		t.Fatalf("expected 1 character, got %d", len(a.Characters))
	}
	ca := a.Characters[0]
	if ca.Name != "VANCE" {
		t.Errorf("unexpected name %q", ca.Name)
	}
	if ca.Appearances != 2 || ca.DialogueCount != 2 {
		t.Errorf("unexpected counts: appearances=%d dialogues=%d", ca.Appearances, ca.DialogueCount)
	}
	if len(ca.ScenesPresent) != 2 || ca.ScenesPresent[0] != 1 || ca.ScenesPresent[1] != 2 {
		t.Errorf("expected true scene numbers [1 2], got %v", ca.ScenesPresent)
	}

	if len(a.Scenes) != 2 {
		t.Fatalf("expected 2 scene analyses, got %d", len(a.Scenes))
	}
	first := a.Scenes[0]
	if first.ActionSummary != "Machines hum. Vance checks a dial." {
		t.Errorf("unexpected summary %q", first.ActionSummary)
	}
	// dialogue: "It works." + "It really works." = 5 words; action = 6 words
	if first.DialogueWords != 5 || first.ActionWords != 6 {
		t.Errorf("unexpected word counts: dialogue=%d action=%d", first.DialogueWords, first.ActionWords)
	}
	if first.DialogueToActionRatio != "0.83" {
		t.Errorf("expected ratio 0.83, got %q", first.DialogueToActionRatio)
	}

	if a.FullContent == nil || a.FullContent.SceneCount != 2 {
		t.Error("expected full canonical model attached")
	}
	if len(a.Structure) != 2 || a.Structure[0].ActionCount != 2 {
		t.Errorf("unexpected structure %v", a.Structure)
	}
}

func TestRatioString(t *testing.T) {
	cases := []struct {
		dialogue, action int
		want             string
	}{
		{10, 0, "Infinity"},
		{0, 0, "Infinity"},
		{10, 5, "2.00"},
		{1, 3, "0.33"},
		{0, 7, "0.00"},
	}
	for _, tc := range cases {
		if got := ratioString(tc.dialogue, tc.action); got != tc.want {
			t.Errorf("ratioString(%d, %d): expected %q, got %q", tc.dialogue, tc.action, tc.want, got)
		}
	}
}

func TestFountain_RoundTrip(t *testing.T) {
	src := "INT. HOUSE - DAY\n\nJohn walks in.\n\nJOHN\nHello there.\n"
	doc, err := parser.Parse([]byte(src), "fountain")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	out := Fountain(doc)
	doc2, err := parser.Parse([]byte(out), "fountain")
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if doc2.SceneCount != doc.SceneCount {
		t.Errorf("scene count changed: %d vs %d", doc.SceneCount, doc2.SceneCount)
	}
	if doc2.TotalWordCount != doc.TotalWordCount {
		t.Errorf("word count changed: %d vs %d", doc.TotalWordCount, doc2.TotalWordCount)
	}
	s1, s2 := doc.Scenes[0], doc2.Scenes[0]
	if s1.Heading != s2.Heading {
		t.Errorf("heading changed: %q vs %q", s1.Heading, s2.Heading)
	}
	if len(s2.Action) != 1 || s2.Action[0] != "John walks in." {
		t.Errorf("action changed: %v", s2.Action)
	}
	if len(s2.Dialogues) != 1 || s2.Dialogues[0].Character != "JOHN" {
		t.Errorf("dialogue changed: %v", s2.Dialogues)
	}
	if s2.Dialogues[0].Content[0] != "Hello there." {
		t.Errorf("dialogue content changed: %v", s2.Dialogues[0].Content)
	}
}

func TestFountain_MetadataAndTransitions(t *testing.T) {
	doc := sampleDoc(t)
	out := Fountain(doc)

	if !strings.HasPrefix(out, "Title: Gravity Well\n\n") {
		t.Errorf("expected title block first, got %q", out[:40])
	}
	if !strings.Contains(out, "> CUT TO:") {
		t.Error("expected transition rendered with > prefix")
	}
	if !strings.Contains(out, "VANCE\n(whispering)\nIt works.\nIt really works.") {
		t.Error("expected dialogue block with parenthetical")
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("expected single trailing newline, got %q", out[len(out)-3:])
	}
}

func TestFountain_EmptyDocument(t *testing.T) {
	if out := Fountain(screenplay.New()); out != "" {
		t.Errorf("expected empty string, got %q", out)
	}
}

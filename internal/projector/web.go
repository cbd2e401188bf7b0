// Package projector derives downstream views from the canonical screenplay
// model. Every projector is a pure function: it trusts the model's
// invariants and never mutates it.
package projector

import (
	"fmt"
	"strings"

	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// WebView is a flat, render-ready structure for UI display.
type WebView struct {
	Title  string     `json:"title,omitempty"`
	Scenes []WebScene `json:"scenes"`
}

type WebScene struct {
	ID        string        `json:"id"`
	Heading   string        `json:"heading"`
	Action    string        `json:"action"`
	Dialogues []WebDialogue `json:"dialogues"`
}

type WebDialogue struct {
	Character     string `json:"character"`
	Parenthetical string `json:"parenthetical,omitempty"`
	Text          string `json:"text"`
}

// Web projects the canonical model into a display structure: action blocks
// joined with a blank line, dialogue content lines joined with single
// spaces, scene ids from 1-based position.
func Web(doc *screenplay.Screenplay) *WebView {
	view := &WebView{
		Title:  doc.Metadata.Title,
		Scenes: make([]WebScene, 0, len(doc.Scenes)),
	}
	for i, scene := range doc.Scenes {
		ws := WebScene{
			ID:        sceneID(i + 1),
			Heading:   scene.Heading,
			Action:    strings.Join(scene.Action, "\n\n"),
			Dialogues: make([]WebDialogue, 0, len(scene.Dialogues)),
		}
		for _, d := range scene.Dialogues {
			ws.Dialogues = append(ws.Dialogues, WebDialogue{
				Character:     d.Character,
				Parenthetical: d.Parenthetical,
				Text:          strings.Join(d.Content, " "),
			})
		}
		view.Scenes = append(view.Scenes, ws)
	}
	return view
}

func sceneID(position int) string {
	return fmt.Sprintf("scene-%d", position)
}

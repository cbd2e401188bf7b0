package projector

import (
	"fmt"
	"strings"

	"github.com/scriptmentor/scriptparse/internal/screenplay"
)

// Analysis is the structured context handed to the mentor-feedback
// pipeline: per-character and per-scene statistics, a lightweight structure
// view, and the complete canonical model for consumers needing raw access.
type Analysis struct {
	Characters  []CharacterAnalysis    `json:"characters"`
	Scenes      []SceneAnalysis        `json:"scenes"`
	Structure   []SceneStructure       `json:"structure"`
	FullContent *screenplay.Screenplay `json:"full_content"`
}

type CharacterAnalysis struct {
	Name          string `json:"name"`
	Appearances   int    `json:"appearances"`
	DialogueCount int    `json:"dialogue_count"`
	ScenesPresent []int  `json:"scenes_present"`
}

type SceneAnalysis struct {
	ID            string `json:"id"`
	Heading       string `json:"heading"`
	ActionSummary string `json:"action_summary"`
	DialogueCount int    `json:"dialogue_count"`
	DialogueWords int    `json:"dialogue_words"`
	ActionWords   int    `json:"action_words"`

	// DialogueToActionRatio is a fixed two-decimal numeric string, or the
	// literal "Infinity" when action_words is zero. Downstream
	// prompt-construction code matches on that exact string.
	DialogueToActionRatio string `json:"dialogue_to_action_ratio"`
}

type SceneStructure struct {
	ID            string   `json:"id"`
	Heading       string   `json:"heading"`
	Characters    []string `json:"characters"`
	ActionCount   int      `json:"action_count"`
	DialogueCount int      `json:"dialogue_count"`
}

// Analyze projects the canonical model into the analysis structure.
// scenes_present holds true 1-based scene numbers, not ranks among a
// character's appearances.
func Analyze(doc *screenplay.Screenplay) *Analysis {
	a := &Analysis{
		Characters:  make([]CharacterAnalysis, 0, doc.Characters.Len()),
		Scenes:      make([]SceneAnalysis, 0, len(doc.Scenes)),
		Structure:   make([]SceneStructure, 0, len(doc.Scenes)),
		FullContent: doc,
	}

	for _, name := range doc.Characters.Names() {
		ca := CharacterAnalysis{Name: name, ScenesPresent: []int{}}
		for i, scene := range doc.Scenes {
			if scene.Characters.Has(name) {
				ca.Appearances++
				ca.ScenesPresent = append(ca.ScenesPresent, i+1)
			}
			for _, d := range scene.Dialogues {
				if d.Character == name {
					ca.DialogueCount++
				}
			}
		}
		a.Characters = append(a.Characters, ca)
	}

	for i, scene := range doc.Scenes {
		id := sceneID(i + 1)

		dialogueWords := 0
		for _, d := range scene.Dialogues {
			for _, line := range d.Content {
				dialogueWords += screenplay.CountWords(line)
			}
		}
		actionWords := 0
		for _, block := range scene.Action {
			actionWords += screenplay.CountWords(block)
		}

		a.Scenes = append(a.Scenes, SceneAnalysis{
			ID:                    id,
			Heading:               scene.Heading,
			ActionSummary:         strings.Join(scene.Action, " "),
			DialogueCount:         len(scene.Dialogues),
			DialogueWords:         dialogueWords,
			ActionWords:           actionWords,
			DialogueToActionRatio: ratioString(dialogueWords, actionWords),
		})
		a.Structure = append(a.Structure, SceneStructure{
			ID:            id,
			Heading:       scene.Heading,
			Characters:    scene.Characters.Names(),
			ActionCount:   len(scene.Action),
			DialogueCount: len(scene.Dialogues),
		})
	}

	return a
}

func ratioString(dialogueWords, actionWords int) string {
	if actionWords == 0 {
		return "Infinity"
	}
	return fmt.Sprintf("%.2f", float64(dialogueWords)/float64(actionWords))
}

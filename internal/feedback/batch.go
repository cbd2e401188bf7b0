package feedback

import (
	"strings"

	"github.com/scriptmentor/scriptparse/internal/projector"
)

// DefaultTokenBudget is the per-request token budget for analysis batches.
const DefaultTokenBudget = 6000

// Batch is one token-budgeted group of consecutive scene analyses.
type Batch struct {
	Scenes []projector.SceneAnalysis
	Tokens int
}

// BatchScenes groups scene analyses into batches that each fit the token
// budget, preserving scene order. A scene larger than the budget still gets
// its own batch rather than being dropped.
func BatchScenes(scenes []projector.SceneAnalysis, budget int) []Batch {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}

	var batches []Batch
	var current Batch

	for _, scene := range scenes {
		cost := sceneTokens(scene)
		if len(current.Scenes) > 0 && current.Tokens+cost > budget {
			batches = append(batches, current)
			current = Batch{}
		}
		current.Scenes = append(current.Scenes, scene)
		current.Tokens += cost
	}
	if len(current.Scenes) > 0 {
		batches = append(batches, current)
	}
	return batches
}

func sceneTokens(s projector.SceneAnalysis) int {
	return EstimateTokens(s.Heading+" "+s.ActionSummary) + wordTokens(s.DialogueWords)
}

// EstimateTokens gives a rough token count from word count. Exact
// tokenization is not required for batching.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	tokens := wordTokens(len(strings.Fields(text)))
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// wordTokens applies the ~1.33 tokens-per-word heuristic for English text.
func wordTokens(words int) int {
	return int(float64(words) * 1.33)
}

package exercise

import "github.com/abhisek/linguaflow/internal/llm"

// ExerciseSchema defines the JSON schema for exercise generation responses.
var ExerciseSchema = &llm.Schema{
	Name:        "writing-exercise",
	Description: "A single English writing or listening exercise",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A catchy title for the writing exercise",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Clear instructions on what the user should write",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A helpful tip or starting words",
			},
			"targetFocus": map[string]any{
				"type":        "string",
				"description": "The specific grammar rule, vocabulary theme, or listening skill being practiced",
			},
			"hiddenText": map[string]any{
				"type":        "string",
				"description": "For dictation/cloze: the exact complete sentence. For others: empty string.",
			},
			"clozeSentence": map[string]any{
				"type":        "string",
				"description": "For Fill-in-Blanks: The sentence with key words replaced by '_______'. Empty otherwise.",
			},
		},
		"required": []any{"title", "description", "hint", "targetFocus"},
	},
}

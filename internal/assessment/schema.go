package assessment

import "github.com/abhisek/linguaflow/internal/llm"

// AssessmentSchema defines the JSON schema for assessment responses.
var AssessmentSchema = &llm.Schema{
	Name:        "writing-assessment",
	Description: "A scored critique of a student's English writing",
	Strict:      true,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "A score from 0 to 100 based on the proficiency level",
			},
			"correctedVersion": map[string]any{
				"type":        "string",
				"description": "The user's text rewritten perfectly",
			},
			"generalComment": map[string]any{
				"type":        "string",
				"description": "Encouraging overall feedback",
			},
			"improvedVocabulary": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "List of 3-5 sophisticated words that could replace simple words used in the text",
			},
			"feedbackItems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"original": map[string]any{
							"type":        "string",
							"description": "The segment of text with an issue",
						},
						"correction": map[string]any{
							"type":        "string",
							"description": "The corrected version of that segment",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why this change was made",
						},
						"type": map[string]any{
							"type": "string",
							"enum": []any{"grammar", "vocabulary", "style"},
						},
					},
					"required":             []any{"original", "correction", "explanation", "type"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"score", "correctedVersion", "generalComment", "feedbackItems", "improvedVocabulary"},
		"additionalProperties": false,
	},
}

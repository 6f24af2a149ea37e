package exercise

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated exercise; the first
	// failure sends the generator to the fallback exercise.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Voice is the speech voice used for dictation audio.
	Voice string
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ClozeValidator{},
		},
		MaxTokens:   1024,
		Temperature: 0.9,
		Voice:       "Fenrir",
	}
}

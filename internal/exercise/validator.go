package exercise

import (
	"fmt"
	"regexp"
)

// Validator checks a generated exercise before it is shown.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages and logging,
	// e.g. "structural", "cloze".
	Name() string

	// Validate returns nil if the exercise passes.
	Validate(ex *Exercise, mode Mode) *ValidationError
}

// ValidationError describes why an exercise failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks that the four always-required fields are
// present.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(ex *Exercise, _ Mode) *ValidationError {
	fields := []struct {
		name, value string
	}{
		{"title", ex.Title},
		{"description", ex.Description},
		{"hint", ex.Hint},
		{"targetFocus", ex.TargetFocus},
	}
	for _, f := range fields {
		if f.value == "" {
			return &ValidationError{Validator: v.Name(), Message: f.name + " is empty"}
		}
	}
	return nil
}

var blankRe = regexp.MustCompile(`_{3,}`)

// ClozeValidator requires a fill-in-blanks exercise that carries a
// reference sentence to also carry a cloze sentence with at least one blank.
type ClozeValidator struct{}

func (v *ClozeValidator) Name() string { return "cloze" }

func (v *ClozeValidator) Validate(ex *Exercise, mode Mode) *ValidationError {
	if mode != FillInBlanks || ex.HiddenText == "" {
		return nil
	}
	if ex.ClozeSentence == "" {
		return &ValidationError{Validator: v.Name(), Message: "clozeSentence is empty"}
	}
	if !HasBlank(ex.ClozeSentence) {
		return &ValidationError{Validator: v.Name(), Message: "clozeSentence has no blank marker"}
	}
	return nil
}

// HasBlank reports whether s contains a run of three or more underscores.
func HasBlank(s string) bool {
	return blankRe.MatchString(s)
}

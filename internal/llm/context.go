package llm

import "context"

// Purpose labels recorded with every logged call. They group usage in
// `linguaflow llm stats` and filter `llm list --purpose`.
const (
	PurposeExerciseGen    = "exercise-gen"
	PurposeDictationAudio = "dictation-audio"
	PurposeAssessment     = "assessment"
	PurposeUnknown        = "unknown"
)

// Purposes lists the labels the application emits.
var Purposes = []string{PurposeExerciseGen, PurposeDictationAudio, PurposeAssessment}

// KnownPurpose reports whether p is one of Purposes.
func KnownPurpose(p string) bool {
	for _, k := range Purposes {
		if k == p {
			return true
		}
	}
	return false
}

type purposeKey struct{}

// WithPurpose tags ctx so the logging decorator can attribute the call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}

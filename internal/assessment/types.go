package assessment

// FeedbackType classifies a single correction.
type FeedbackType string

const (
	TypeGrammar    FeedbackType = "grammar"
	TypeVocabulary FeedbackType = "vocabulary"
	TypeStyle      FeedbackType = "style"
)

// FeedbackItem is one detected issue in a submission.
type FeedbackItem struct {
	Original    string       `json:"original"`
	Correction  string       `json:"correction"`
	Explanation string       `json:"explanation"`
	Type        FeedbackType `json:"type"`
}

// Result is the scored critique of one submission.
type Result struct {
	Score              int            `json:"score"`
	CorrectedVersion   string         `json:"correctedVersion"`
	GeneralComment     string         `json:"generalComment"`
	ImprovedVocabulary []string       `json:"improvedVocabulary"`
	FeedbackItems      []FeedbackItem `json:"feedbackItems"`
}

// Band groups scores for display colouring.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandWeak      Band = "weak"
)

func (r *Result) Band() Band {
	switch {
	case r.Score >= 90:
		return BandExcellent
	case r.Score >= 70:
		return BandGood
	case r.Score >= 50:
		return BandFair
	}
	return BandWeak
}

// Headline is the one-line verdict shown above the score.
func (r *Result) Headline() string {
	switch {
	case r.Score >= 80:
		return "Excellent work!"
	case r.Score >= 60:
		return "Good effort!"
	}
	return "Keep practicing!"
}

package assessment

import (
	"fmt"

	"github.com/abhisek/linguaflow/internal/exercise"
)

const systemPrompt = "You are a supportive English tutor. specific, actionable feedback."

func buildUserMessage(text string, ex exercise.Exercise, level exercise.Level) string {
	var context string
	if ex.ExactMatch() {
		context = fmt.Sprintf(`Type of Exercise: Dictation or Fill-in-the-Blanks (Exact Match Required).
Target Text (Correct Answer): "%s"
User Input: "%s"
Task: Compare the user input to the target text.
- If it is a perfect match (ignoring capitalization/minor punctuation), score 100.
- If words are missing or wrong, mark them as specific errors.
- Focus strictly on the differences between user input and target text.`, ex.HiddenText, text)
	} else {
		context = fmt.Sprintf(`Student Level: %s
Exercise Topic: %s - %s
Student Text: "%s"
Task: Provide constructive feedback focusing on grammar, vocabulary choice, and natural flow.`, level, ex.Title, ex.Description, text)
	}

	return fmt.Sprintf("Analyze the following student writing submission.\n%s\n\nBe encouraging but precise.", context)
}

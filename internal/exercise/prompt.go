package exercise

import (
	"fmt"
)

const systemPrompt = "You are an expert English teacher. Create engaging, level-appropriate writing prompts."

// BlankMarker replaces redacted words in a cloze sentence.
const BlankMarker = "_______"

// buildUserMessage returns the prompt for level and mode. Dictation has its
// own standalone prompt; every other mode is wrapped in the common header.
func buildUserMessage(level Level, mode Mode) string {
	if mode == Dictation {
		return fmt.Sprintf(`Create a Dictation exercise for a student at %s level.
Generate a single, interesting sentence that challenges their listening skills (e.g. using homophones, specific tenses, or minimal pairs).
Return a JSON object with:
- title: "Dictation Challenge"
- description: "Listen to the audio carefully and type exactly what you hear."
- hint: A context clue about the sentence (e.g. "It's about the weather").
- targetFocus: What is being tested (e.g. "Past Perfect Tense").
- hiddenText: The exact sentence you generated.`, level)
	}

	return fmt.Sprintf("Create an English exercise for a student at %s level.\n%s", level, modeInstruction(level, mode))
}

func modeInstruction(level Level, mode Mode) string {
	switch mode {
	case FillInBlanks:
		return fmt.Sprintf(`Create a Fill-in-the-Blanks exercise for %s.
1. Generate a sentence (10-20 words) with clear grammar or vocabulary usage.
2. Select 1-3 consecutive or separate key words to remove (e.g., prepositions, verb tenses, specific vocabulary).
3. Create a 'clozeSentence' where these words are replaced by '%s'.
4. Store the FULL, original sentence in 'hiddenText'.
5. Description should be: "Complete the sentence by filling in the missing words. Rewrite the full sentence."`, level, BlankMarker)
	case SentenceChallenge:
		return `Create a Sentence Writing Challenge.
Give the user a specific constraint (e.g., "Use the word 'However'", "Write a sentence in Future Perfect Continuous", "Describe an apple without using the word red").
The description should explicitly tell them what to write in one sentence.`
	default:
		return fmt.Sprintf(`Create a short English writing exercise. The focus is: %s.
Keep the topic interesting and relevant.
The instruction should ask for a paragraph of about 3-5 sentences.`, mode)
	}
}

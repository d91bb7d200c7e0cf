package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/sabi/internal/llm"
)

const systemPrompt = `You are a warm, encouraging language tutor for adult beginners. A learner just missed a vocabulary drill. Keep it short and kind.`

func userMessage(in Input) string {
	var b strings.Builder
	if in.LessonTitle != "" {
		fmt.Fprintf(&b, "Lesson: %s\n", in.LessonTitle)
	}
	fmt.Fprintf(&b, "Drill: %s\n", in.Mode)
	fmt.Fprintf(&b, "Prompt: %s\n", in.Prompt)
	fmt.Fprintf(&b, "Correct answer: %s\n", in.CorrectAnswer)

	b.WriteString("\nLearner's wrong answers:\n")
	if len(in.WrongAnswers) == 0 {
		b.WriteString("None recorded\n")
	}
	for _, w := range in.WrongAnswers {
		fmt.Fprintf(&b, "- %s\n", w)
	}

	b.WriteString(`
Instructions:
1. In at most three sentences, explain what the correct answer means and why it fits the prompt.
2. If a wrong answer is a common confusion, say briefly how it differs.
3. Give one memory tip (a mnemonic, sound-alike or image) in a single sentence.
4. Plain text only. No markdown.`)
	return b.String()
}

// ExplanationSchema is the structured output of Explain.
var ExplanationSchema = &llm.Schema{
	Name:        "drill-explanation",
	Description: "Short explanation of a missed vocabulary item with a memory tip",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "What the correct answer means and why it fits (1-3 sentences)",
			},
			"memory_tip": map[string]any{
				"type":        "string",
				"description": "One-sentence mnemonic for remembering the word",
			},
		},
		"required":             []any{"explanation", "memory_tip"},
		"additionalProperties": false,
	},
}

package lesson

import (
	"github.com/abhisek/sabi/internal/curriculum"
	"github.com/abhisek/sabi/internal/drill"
)

// drillItems converts the lesson's steps into drill items per scored phase.
func drillItems(l *curriculum.Lesson) map[Phase][]drill.Item {
	items := make(map[Phase][]drill.Item)
	for _, st := range l.Steps() {
		switch st := st.(type) {
		case curriculum.Exercise:
			items[PhaseExercise] = append(items[PhaseExercise], drill.Choice{
				ID:      st.QuestionWord,
				Prompt:  st.QuestionWord,
				Picture: st.QuestionPicture,
				Choices: st.Options,
				Answer:  st.Answer,
			})
		case curriculum.FillInGap:
			items[PhaseFillInGap] = append(items[PhaseFillInGap], drill.Choice{
				ID:      st.Sentence + "|" + st.Answer,
				Prompt:  st.Sentence,
				Picture: st.Picture,
				Choices: st.Options,
				Answer:  st.Answer,
			})
		case curriculum.TypingExercise:
			items[PhaseTyping] = append(items[PhaseTyping], drill.Typed{
				Prompt:  st.Sentence,
				Picture: st.Picture,
				Answer:  st.Answer,
			})
		case curriculum.Assessment:
			words := st.Words()
			for _, p := range st.Pairs {
				items[PhaseAssessment] = append(items[PhaseAssessment], drill.Choice{
					ID:      p.Word,
					Prompt:  p.Picture,
					Picture: p.Picture,
					Choices: words,
					Answer:  p.Word,
				})
			}
		case curriculum.Presentation, curriculum.Dialogue:
			// Not drilled.
		}
	}
	return items
}

package lesson

import "github.com/abhisek/sabi/internal/tutor"

// explainedMsg carries a tutor answer for the item at step.
type explainedMsg struct {
	step int
	exp  *tutor.Explanation
	err  error
}

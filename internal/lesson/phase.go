// Package lesson runs one lesson: it walks the learner through the phases
// in order, drives a drill evaluator for each scored phase, and hands the
// final score to the progress store.
package lesson

import "github.com/abhisek/sabi/internal/drill"

// Phase is a stage of a lesson.
type Phase int

const (
	PhasePresentation Phase = iota
	PhaseDialogue
	PhaseExercise
	PhaseFillInGap
	PhaseTyping
	PhaseAssessment
	PhaseComplete
)

// ScoredPhases are the phases that produce a 0-100 score.
var ScoredPhases = []Phase{PhaseExercise, PhaseFillInGap, PhaseTyping, PhaseAssessment}

func (p Phase) String() string {
	switch p {
	case PhasePresentation:
		return "presentation"
	case PhaseDialogue:
		return "dialogue"
	case PhaseExercise:
		return "exercise"
	case PhaseFillInGap:
		return "fill_in_gap"
	case PhaseTyping:
		return "typing"
	case PhaseAssessment:
		return "assessment"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Scored reports whether the phase is drilled and scored.
func (p Phase) Scored() bool {
	return p >= PhaseExercise && p <= PhaseAssessment
}

// Mode returns the drill mode of a scored phase.
func (p Phase) Mode() drill.Mode {
	switch p {
	case PhaseFillInGap:
		return drill.ModeFillInGap
	case PhaseTyping:
		return drill.ModeTyping
	case PhaseAssessment:
		return drill.ModePictureMatch
	default:
		return drill.ModeMultipleChoice
	}
}

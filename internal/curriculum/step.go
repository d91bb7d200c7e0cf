package curriculum

// StepKind is the closed set of lesson step kinds, in lesson order.
type StepKind int

const (
	KindPresentation StepKind = iota
	KindDialogue
	KindExercise
	KindFillInGap
	KindTyping
	KindAssessment
)

func (k StepKind) String() string {
	switch k {
	case KindPresentation:
		return "presentation"
	case KindDialogue:
		return "dialogue"
	case KindExercise:
		return "exercise"
	case KindFillInGap:
		return "fill_in_gap"
	case KindTyping:
		return "typing"
	case KindAssessment:
		return "assessment"
	default:
		return "unknown"
	}
}

// Step is one unit of lesson content. Only the six step types of this
// package implement it.
type Step interface {
	Kind() StepKind
	step()
}

func (Presentation) Kind() StepKind   { return KindPresentation }
func (Dialogue) Kind() StepKind       { return KindDialogue }
func (Exercise) Kind() StepKind       { return KindExercise }
func (FillInGap) Kind() StepKind      { return KindFillInGap }
func (TypingExercise) Kind() StepKind { return KindTyping }
func (Assessment) Kind() StepKind     { return KindAssessment }

func (Presentation) step()   {}
func (Dialogue) step()       {}
func (Exercise) step()       {}
func (FillInGap) step()      {}
func (TypingExercise) step() {}
func (Assessment) step()     {}

// Steps lists every step of the lesson in play order.
func (l *Lesson) Steps() []Step {
	n := len(l.Presentations) + len(l.Dialogues) + len(l.Exercises) +
		len(l.FillInGaps) + len(l.TypingExercises) + len(l.Assessments)
	steps := make([]Step, 0, n)
	for _, s := range l.Presentations {
		steps = append(steps, s)
	}
	for _, s := range l.Dialogues {
		steps = append(steps, s)
	}
	for _, s := range l.Exercises {
		steps = append(steps, s)
	}
	for _, s := range l.FillInGaps {
		steps = append(steps, s)
	}
	for _, s := range l.TypingExercises {
		steps = append(steps, s)
	}
	for _, s := range l.Assessments {
		steps = append(steps, s)
	}
	return steps
}

// StepsOf returns the steps of a single kind.
func (l *Lesson) StepsOf(kind StepKind) []Step {
	var out []Step
	for _, s := range l.Steps() {
		if s.Kind() == kind {
			out = append(out, s)
		}
	}
	return out
}

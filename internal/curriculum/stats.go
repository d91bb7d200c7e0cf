package curriculum

// WordCount returns the number of phrases a lesson introduces.
func (l *Lesson) WordCount() int {
	return len(l.Presentations)
}

// StepCount returns the number of steps a learner walks through, counting
// each scored item once.
func (l *Lesson) StepCount() int {
	return len(l.Steps())
}

// Package curriculum defines the lesson content model and loads it.
package curriculum

import "strings"

// GapMarker marks the blank in a fill-in-the-gap sentence.
const GapMarker = "___"

// Unit is an ordered list of lessons under one title.
type Unit struct {
	Title   string   `json:"unit"`
	Lessons []Lesson `json:"lessons"`
}

// Lesson returns the lesson at index, if it exists.
func (u *Unit) Lesson(index int) (*Lesson, bool) {
	if u == nil || index < 0 || index >= len(u.Lessons) {
		return nil, false
	}
	return &u.Lessons[index], true
}

// Lesson is the content of one lesson, grouped by step kind.
type Lesson struct {
	Title           string           `json:"title"`
	Presentations   []Presentation   `json:"presentations"`
	Dialogues       []Dialogue       `json:"dialogues"`
	Exercises       []Exercise       `json:"exercises"`
	FillInGaps      []FillInGap      `json:"fill_in_gap"`
	TypingExercises []TypingExercise `json:"typing_exercises"`
	Assessments     []Assessment     `json:"assessments"`
}

// Presentation introduces a word or phrase.
type Presentation struct {
	Word         string `json:"word"`
	Picture      string `json:"picture"`
	Grammar      string `json:"grammar"`
	CulturalNote string `json:"cultural_note"`
}

// Dialogue is a two-line exchange shown during playback.
type Dialogue struct {
	Speaker1       string   `json:"speaker1"`
	Speaker2       string   `json:"speaker2"`
	PictureContext []string `json:"picture_context"`
}

// Exercise is a multiple-choice question.
type Exercise struct {
	QuestionPicture string   `json:"question_picture"`
	QuestionWord    string   `json:"question_word"`
	Options         []string `json:"options"`
	Answer          string   `json:"answer"`
}

// FillInGap is a sentence with one blank and a set of candidate words.
type FillInGap struct {
	Sentence string   `json:"sentence"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options"`
	Picture  string   `json:"picture"`
}

// Parts splits the sentence around the gap. Without a marker the whole
// sentence is returned as the prefix.
func (f FillInGap) Parts() (before, after string) {
	before, after, _ = strings.Cut(f.Sentence, GapMarker)
	return before, after
}

// Fill returns the sentence with word placed in the gap.
func (f FillInGap) Fill(word string) string {
	before, after := f.Parts()
	return before + word + after
}

// TypingExercise asks for the missing word to be typed.
type TypingExercise struct {
	Sentence string `json:"sentence"`
	Answer   string `json:"answer"`
	Picture  string `json:"picture"`
}

// Assessment is a picture-matching round over a set of pairs.
type Assessment struct {
	Pairs []Pair `json:"pairs"`
}

// Pair links a phrase to its picture.
type Pair struct {
	Word    string `json:"word"`
	Picture string `json:"picture"`
}

// Words returns the phrases of all pairs, in order.
func (a Assessment) Words() []string {
	words := make([]string, len(a.Pairs))
	for i, p := range a.Pairs {
		words[i] = p.Word
	}
	return words
}

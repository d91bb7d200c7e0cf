// Package drill evaluates answers for the scored lesson phases: attempt
// counting, retry policy, partial credit and the per-phase learning queue.
package drill

import "strings"

// Item is a single drill prompt. The evaluator only needs these
// capabilities; it never inspects the concrete step type.
type Item interface {
	// Key identifies the item for queue spacing. Duplicated items share a key.
	Key() string
	// Options lists the selectable answers, or nil for free-text items.
	Options() []string
	CorrectAnswer() string
	Matches(candidate string) bool
}

// Choice is an item answered by picking one of a fixed set of options.
// The answer must match exactly.
type Choice struct {
	ID      string
	Prompt  string
	Picture string
	Choices []string
	Answer  string
}

func (c Choice) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Prompt
}

func (c Choice) Options() []string             { return c.Choices }
func (c Choice) CorrectAnswer() string         { return c.Answer }
func (c Choice) Matches(candidate string) bool { return candidate == c.Answer }

// Typed is an item answered with free text. Surrounding whitespace and
// letter case are ignored.
type Typed struct {
	Prompt  string
	Picture string
	Answer  string
}

func (t Typed) Key() string           { return t.Prompt }
func (t Typed) Options() []string     { return nil }
func (t Typed) CorrectAnswer() string { return t.Answer }

func (t Typed) Matches(candidate string) bool {
	return strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(t.Answer))
}

package drill

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abhisek/sabi/internal/shuffle"
)

// DefaultRepeat is how many times each item appears in a learning queue.
const DefaultRepeat = 2

// Config tunes an Evaluator. Zero values select the defaults.
type Config struct {
	Rand      *rand.Rand
	Repeat    int
	Threshold int
}

// Evaluator walks a learning queue for one phase entry and scores it.
// It is not safe for concurrent use.
type Evaluator struct {
	mode      Mode
	threshold int
	rng       *rand.Rand

	queue   []Item
	credits []float64
	pos     int
	done    bool

	// Attempt state for queue[pos].
	options   []string
	selected  string
	hasSelect bool
	wrong     map[string]bool
	attempts  int
	status    Status
}

// New builds a learning queue from items (each repeated, then spread out
// so equal items are not adjacent) and positions the cursor on the first
// entry. An empty item list yields an evaluator that is already done.
func New(mode Mode, items []Item, cfg Config) *Evaluator {
	if cfg.Rand == nil {
		cfg.Rand = shuffle.NewRand()
	}
	if cfg.Repeat <= 0 {
		cfg.Repeat = DefaultRepeat
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = mode.Threshold()
	}

	queue := make([]Item, 0, len(items)*cfg.Repeat)
	for range cfg.Repeat {
		queue = append(queue, items...)
	}
	queue = shuffle.NoConsecutive(cfg.Rand, queue, func(it Item) string { return it.Key() })

	e := &Evaluator{
		mode:      mode,
		threshold: cfg.Threshold,
		rng:       cfg.Rand,
		queue:     queue,
		credits:   make([]float64, len(queue)),
		done:      len(queue) == 0,
	}
	if !e.done {
		e.enter(0)
	}
	return e
}

func (e *Evaluator) enter(pos int) {
	e.pos = pos
	e.credits[pos] = 0
	e.options = shuffle.Shuffle(e.rng, e.queue[pos].Options())
	e.selected = ""
	e.hasSelect = false
	e.wrong = make(map[string]bool)
	e.attempts = 0
	e.status = StatusAnswering
}

// SeekLast moves the cursor to the last queue entry with fresh attempt state.
// Used when a phase is re-entered backwards.
func (e *Evaluator) SeekLast() {
	if len(e.queue) == 0 {
		return
	}
	e.done = false
	e.enter(len(e.queue) - 1)
}

func (e *Evaluator) Mode() Mode        { return e.mode }
func (e *Evaluator) Len() int          { return len(e.queue) }
func (e *Evaluator) Position() int     { return e.pos }
func (e *Evaluator) Done() bool        { return e.done }
func (e *Evaluator) Status() Status    { return e.status }
func (e *Evaluator) Attempts() int     { return e.attempts }
func (e *Evaluator) Threshold() int    { return e.threshold }
func (e *Evaluator) Options() []string { return slices.Clone(e.options) }

// Current returns the item under the cursor, or nil when the queue is empty.
func (e *Evaluator) Current() Item {
	if len(e.queue) == 0 {
		return nil
	}
	return e.queue[e.pos]
}

// Selected returns the pending answer, if any.
func (e *Evaluator) Selected() (string, bool) {
	return e.selected, e.hasSelect
}

// IsWrong reports whether answer was already tried and rejected for the
// current item.
func (e *Evaluator) IsWrong(answer string) bool {
	return e.wrong[answer]
}

// Reveal returns the correct answer once the item is finished.
func (e *Evaluator) Reveal() (string, bool) {
	if e.done || !e.status.Terminal() {
		return "", false
	}
	return e.queue[e.pos].CorrectAnswer(), true
}

// Select sets the pending answer. It is refused after the item finished,
// while a retry is pending, for answers already rejected, and for answers
// that are not among the options of a discrete item.
func (e *Evaluator) Select(answer string) bool {
	if e.done || e.status != StatusAnswering {
		return false
	}
	if e.mode.Discrete() {
		if e.wrong[answer] || !slices.Contains(e.options, answer) {
			return false
		}
	}
	e.selected = answer
	e.hasSelect = true
	return true
}

// Confirm checks the pending answer. It returns false without a selection,
// with blank typed input, or when the item is not awaiting an answer.
func (e *Evaluator) Confirm() (Status, bool) {
	if e.done || e.status != StatusAnswering || !e.hasSelect {
		return e.status, false
	}
	if !e.mode.Discrete() && strings.TrimSpace(e.selected) == "" {
		return e.status, false
	}

	item := e.queue[e.pos]
	if item.Matches(e.selected) {
		if e.attempts == 0 {
			e.credits[e.pos] = FirstTryCredit
		} else {
			e.credits[e.pos] = RetryCredit
		}
		e.status = StatusCorrect
		return e.status, true
	}

	if e.mode.Discrete() {
		e.wrong[e.selected] = true
	}
	e.attempts++
	if e.attempts >= e.threshold {
		e.credits[e.pos] = 0
		e.status = StatusFailed
	} else {
		e.status = StatusTryAgain
	}
	return e.status, true
}

// Retry clears the rejected selection so another answer can be chosen.
func (e *Evaluator) Retry() bool {
	if e.done || e.status != StatusTryAgain {
		return false
	}
	e.selected = ""
	e.hasSelect = false
	e.status = StatusAnswering
	return true
}

// Advance moves past a finished item. done is true when the queue is
// exhausted and the score is final.
func (e *Evaluator) Advance() (done, ok bool) {
	if e.done || !e.status.Terminal() {
		return false, false
	}
	if e.pos == len(e.queue)-1 {
		e.done = true
		return true, true
	}
	e.enter(e.pos + 1)
	return false, true
}

// Back moves to the previous queue entry with fresh attempt state. It
// returns false on the first entry.
func (e *Evaluator) Back() bool {
	if e.done || e.pos == 0 {
		return false
	}
	e.enter(e.pos - 1)
	return true
}

// Score returns round(100 * credit / queue length), rounding halves away
// from zero. An empty queue scores 0.
func (e *Evaluator) Score() int {
	if len(e.queue) == 0 {
		return 0
	}
	var sum float64
	for _, c := range e.credits {
		sum += c
	}
	return int(math.Round(100 * sum / float64(len(e.queue))))
}

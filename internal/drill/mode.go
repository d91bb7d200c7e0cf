package drill

// Mode is the kind of drill. It decides the failure threshold and whether
// wrong answers are remembered.
type Mode int

const (
	ModeMultipleChoice Mode = iota
	ModeFillInGap
	ModeTyping
	ModePictureMatch
)

var modeNames = [...]string{"multiple_choice", "fill_in_gap", "typing", "picture_match"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Threshold returns the number of wrong attempts after which an item fails.
func (m Mode) Threshold() int {
	if m == ModePictureMatch {
		return 2
	}
	return 3
}

// Discrete reports whether answers come from a fixed option set. Only
// discrete modes keep a wrong-answer memory.
func (m Mode) Discrete() bool {
	return m != ModeTyping
}

// Status is the evaluation state of the current item.
type Status int

const (
	// StatusAnswering covers both "unanswered" and "selected".
	StatusAnswering Status = iota
	StatusTryAgain
	StatusCorrect
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusAnswering:
		return "answering"
	case StatusTryAgain:
		return "try_again"
	case StatusCorrect:
		return "correct"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the item is finished.
func (s Status) Terminal() bool {
	return s == StatusCorrect || s == StatusFailed
}

// Credit values per item.
const (
	FirstTryCredit = 1.0
	RetryCredit    = 0.5
)

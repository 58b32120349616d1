package model

import (
	"fmt"
	"strconv"
)

// Wire values for the non-option answer outcomes. The stored format keeps
// the original -1/-2 encoding so persisted history round-trips unchanged.
const (
	wireTimedOut = -1
	wireSkipped  = -2
)

type answerKind int

const (
	answerOption answerKind = iota
	answerTimedOut
	answerSkipped
)

// Answer is the recorded outcome for one question: a chosen option index,
// a timeout, or a skip. The zero value is an answered option 0; absence of
// an Answer in an AnswerMap means "not yet answered".
type Answer struct {
	kind   answerKind
	option int
}

// OptionAnswer records a chosen option index.
func OptionAnswer(index int) Answer {
	return Answer{kind: answerOption, option: index}
}

// TimedOutAnswer marks a question the countdown expired on.
func TimedOutAnswer() Answer {
	return Answer{kind: answerTimedOut}
}

// SkippedAnswer marks a question passed over with the skip lifeline.
func SkippedAnswer() Answer {
	return Answer{kind: answerSkipped}
}

// Option returns the chosen option index, or false for timeout/skip outcomes.
func (a Answer) Option() (int, bool) {
	if a.kind != answerOption {
		return 0, false
	}
	return a.option, true
}

// IsTimedOut reports whether the question timed out unanswered.
func (a Answer) IsTimedOut() bool { return a.kind == answerTimedOut }

// IsSkipped reports whether the skip lifeline was used on the question.
func (a Answer) IsSkipped() bool { return a.kind == answerSkipped }

// MarshalJSON encodes the answer in the stored wire format: the option
// index, or -1 (timed out), or -2 (skipped).
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case answerTimedOut:
		return []byte(strconv.Itoa(wireTimedOut)), nil
	case answerSkipped:
		return []byte(strconv.Itoa(wireSkipped)), nil
	default:
		return []byte(strconv.Itoa(a.option)), nil
	}
}

// UnmarshalJSON decodes the stored wire format back into a tagged outcome.
func (a *Answer) UnmarshalJSON(data []byte) error {
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	switch {
	case n == wireTimedOut:
		*a = TimedOutAnswer()
	case n == wireSkipped:
		*a = SkippedAnswer()
	case n >= 0 && n < OptionCount:
		*a = OptionAnswer(n)
	default:
		return fmt.Errorf("decode answer: value %d out of range", n)
	}
	return nil
}

// AnswerMap maps question index to its recorded outcome.
type AnswerMap map[int]Answer

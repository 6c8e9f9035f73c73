package analysis

import (
	"errors"
	"fmt"
)

var ErrMalformedUtterance = errors.New("malformed utterance")

// UtteranceError points at the offending element of the input list.
type UtteranceError struct {
	Index  int
	Reason string
}

func (e *UtteranceError) Error() string {
	return fmt.Sprintf("utterance %d: %s", e.Index, e.Reason)
}

func (e *UtteranceError) Unwrap() error { return ErrMalformedUtterance }

// Validate rejects negative speaker indices. Empty text is allowed.
func Validate(utts []Utterance) error {
	for i, u := range utts {
		if u.SpeakerIndex < 0 {
			return &UtteranceError{Index: i, Reason: fmt.Sprintf("negative speaker index %d", u.SpeakerIndex)}
		}
	}
	return nil
}

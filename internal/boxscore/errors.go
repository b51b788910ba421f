package boxscore

import (
	"errors"
	"fmt"
)

// Every extraction failure is scoped to one game. Callers skip the game and move on.
var (
	ErrMalformedGame     = errors.New("malformed game")
	ErrMalformedRoster   = errors.New("malformed roster")
	ErrMalformedStatSpan = errors.New("malformed stat span")
	ErrFieldDecode       = errors.New("field decode failed")
)

// StatSpanError reports a player whose statistics could not be located in the page text.
type StatSpanError struct {
	Player string
	Next   string // successor in the roster, or the totals sentinel for the last player
}

func (e *StatSpanError) Error() string {
	return fmt.Sprintf("%v: no span from %q to %q", ErrMalformedStatSpan, e.Player, e.Next)
}

func (e *StatSpanError) Is(target error) bool {
	return target == ErrMalformedStatSpan
}

// FieldDecodeError reports a stat span field that did not decode to an integer.
type FieldDecodeError struct {
	Player string
	Field  string
	Value  string
	Err    error
}

func (e *FieldDecodeError) Error() string {
	msg := fmt.Sprintf("%v: %s for %q", ErrFieldDecode, e.Field, e.Player)
	if e.Value != "" {
		msg += fmt.Sprintf(" (value %q)", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FieldDecodeError) Is(target error) bool {
	return target == ErrFieldDecode
}

func (e *FieldDecodeError) Unwrap() error {
	return e.Err
}

// IsSkippable reports whether err means "no usable data for this game" rather
// than an infrastructure failure.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrMalformedGame) ||
		errors.Is(err, ErrMalformedRoster) ||
		errors.Is(err, ErrMalformedStatSpan) ||
		errors.Is(err, ErrFieldDecode)
}

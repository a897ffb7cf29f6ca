package services

import (
	"errors"
	"fmt"
)

// Typed failures returned by the engines. Handlers translate these to
// HTTP statuses; storage-level errors never leak past this package
// untranslated.
var (
	ErrNotFound            = errors.New("not found")
	ErrNotAuthorized       = errors.New("not authorized")
	ErrAlreadyMember       = errors.New("already a member of this room")
	ErrDuplicateRequest    = errors.New("join request already pending")
	ErrInvalidDecision     = errors.New("status must be either approved or rejected")
	ErrInsufficientOptions = errors.New("poll must have at least 2 options")
	ErrMembershipRequired  = errors.New("must be an approved member of this room")
	ErrRoomNotPrivate      = errors.New("this is not a private room")
	ErrTopicRequired       = errors.New("topic is required")
	ErrQuizUnavailable     = errors.New("quiz service unavailable")
)

// QuizParseError carries the raw model output verbatim so callers can log
// or display what the model actually returned.
type QuizParseError struct {
	Raw string
	Err error
}

func (e *QuizParseError) Error() string {
	return fmt.Sprintf("failed to parse quiz data: %v", e.Err)
}

func (e *QuizParseError) Unwrap() error {
	return e.Err
}

package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can map it to a status
// code without inspecting error strings.
type Kind int

const (
	// KindInternal is the fallback for unclassified failures.
	KindInternal Kind = iota
	// KindValidation covers malformed or empty caller input.
	KindValidation
	// KindNotFound means the session has no stored content yet.
	KindNotFound
	// KindAnswerNotFound means no quiz answers are cached for the
	// session/question being checked. Distinct from KindNotFound so the
	// caller can tell "ingest first" from "generate a quiz first".
	KindAnswerNotFound
	// KindInsufficientContent means extraction succeeded but yielded too
	// little text to chunk.
	KindInsufficientContent
	// KindUpstream covers failing or timed-out provider calls (embedding,
	// completion, transcript, vector store).
	KindUpstream
	// KindMalformedOutput means the model response defeated every JSON
	// recovery strategy.
	KindMalformedOutput
)

// Error is a tagged error. Services return these; the HTTP error handler
// maps Kind to a response code.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from anywhere in the chain, defaulting to
// KindInternal for untagged errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

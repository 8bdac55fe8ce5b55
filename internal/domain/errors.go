package domain

import "errors"

// ErrorKind classifies failures so the transport layer can pick a status
// code without inspecting messages.
type ErrorKind string

const (
	KindValidation    ErrorKind = "VALIDATION"
	KindNotFound      ErrorKind = "NOT_FOUND"
	KindRuleViolation ErrorKind = "RULE_VIOLATION"
	KindInvariant     ErrorKind = "INVARIANT"
	// KindStorage is reported for any error that carries no domain kind,
	// which in practice means the database failed.
	KindStorage ErrorKind = "STORAGE"
)

// Error is a client-facing failure raised by the borrowing rules.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewRuleViolation(msg string) error {
	return &Error{Kind: KindRuleViolation, Message: msg}
}

func NewInvariantError(msg string) error {
	return &Error{Kind: KindInvariant, Message: msg}
}

// KindOf returns the kind of the first *Error in err's chain, or KindStorage
// when there is none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStorage
}

package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeInternal    ErrorType = "INTERNAL"
	ErrTypeUnavailable ErrorType = "UNAVAILABLE"
)

// FieldViolation describes one rejected input field, keyed by its wire name.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type DomainError struct {
	Type    ErrorType
	Message string
	Fields  []FieldViolation
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(message string, fields ...FieldViolation) *DomainError {
	e := New(ErrTypeValidation, message, nil)
	e.Fields = fields
	return e
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

func Unavailable(message string, err error) *DomainError {
	return New(ErrTypeUnavailable, message, err)
}

// TypeOf reports the type of the first DomainError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Type, true
	}
	return "", false
}

func IsType(err error, t ErrorType) bool {
	got, ok := TypeOf(err)
	return ok && got == t
}

func IsValidation(err error) bool {
	return IsType(err, ErrTypeValidation)
}

func IsInternal(err error) bool {
	return IsType(err, ErrTypeInternal)
}

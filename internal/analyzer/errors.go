package analyzer

import (
	"errors"
	"net/http"
)

// Kind classifies an analysis failure for the caller.
type Kind int

const (
	KindInputValidation Kind = iota + 1
	KindExtraction
	KindEmptyContent
	KindProcessing
)

func (k Kind) String() string {
	switch k {
	case KindInputValidation:
		return "input_validation"
	case KindExtraction:
		return "extraction"
	case KindEmptyContent:
		return "empty_content"
	case KindProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Error carries a message that is safe to show to the user and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func InputValidation(message string) *Error {
	return &Error{Kind: KindInputValidation, Message: message}
}

func Extraction(err error) *Error {
	return &Error{Kind: KindExtraction, Message: "Failed to parse resume: " + err.Error(), Err: err}
}

func EmptyContent() *Error {
	return &Error{Kind: KindEmptyContent, Message: "Could not extract text from resume."}
}

func Processing(err error) *Error {
	return &Error{Kind: KindProcessing, Message: "An error occurred during analysis: " + err.Error(), Err: err}
}

// HTTPStatus maps an error to a response status. Input validation failures are the
// client's fault; everything else is reported as a server error.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindInputValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

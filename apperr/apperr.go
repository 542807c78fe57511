package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so handlers can map it to a response status.
type Kind string

const (
	KindConfig     Kind = "config_error"
	KindUpstream   Kind = "upstream_error"
	KindDelivery   Kind = "delivery_error"
	KindValidation Kind = "validation_error"
)

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

// Config reports a missing credential or setting, detected before any I/O.
func Config(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

// Upstream reports a failed call to the generation or transcription provider.
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// Delivery reports a failed mail or SMS send.
func Delivery(message string, err error) *Error {
	return &Error{Kind: KindDelivery, Message: message, Err: err}
}

// Validation reports caller-supplied input missing required fields.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsConfig(err error) bool     { return isKind(err, KindConfig) }
func IsUpstream(err error) bool   { return isKind(err, KindUpstream) }
func IsDelivery(err error) bool   { return isKind(err, KindDelivery) }
func IsValidation(err error) bool { return isKind(err, KindValidation) }

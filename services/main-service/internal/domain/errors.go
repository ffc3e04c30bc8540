package domain

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	CodeValidation           ErrCode = "validation_error"
	CodeNotFound             ErrCode = "not_found"
	CodeNotAuthorized        ErrCode = "not_authorized"
	CodeRequestAlreadyExists ErrCode = "request_already_exists"
	CodeEventNotModifiable   ErrCode = "event_not_modifiable"
	CodeIncorrectDateRange   ErrCode = "incorrect_date_range"
	CodeConflict             ErrCode = "conflict"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
}

func (e *AppError) Error() string {
	if len(e.Meta) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Meta)
}

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}
func ErrNotFound(msg string) error             { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrNotAuthorized(msg string) error        { return &AppError{Code: CodeNotAuthorized, Message: msg} }
func ErrRequestAlreadyExists(msg string) error { return &AppError{Code: CodeRequestAlreadyExists, Message: msg} }
func ErrEventNotModifiable(msg string) error   { return &AppError{Code: CodeEventNotModifiable, Message: msg} }
func ErrIncorrectDateRange(msg string) error   { return &AppError{Code: CodeIncorrectDateRange, Message: msg} }
func ErrConflict(msg string) error             { return &AppError{Code: CodeConflict, Message: msg} }

// CodeOf returns the AppError code of err, or "" for foreign errors.
func CodeOf(err error) ErrCode {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

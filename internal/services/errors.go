package services

import (
	"fmt"
	"strconv"

	"tourbook/internal/utils"
)

// ErrorKind identifies a class of domain-rule violation. Handlers map kinds
// onto HTTP status codes; everything that is not a DomainError surfaces as a
// storage failure.
type ErrorKind string

const (
	KindNotFound         ErrorKind = utils.CodeNotFound
	KindValidation       ErrorKind = utils.CodeValidation
	KindCapacityExceeded ErrorKind = utils.CodeCapacityExceeded
	KindDuplicateReview  ErrorKind = utils.CodeDuplicateReview
	KindForbidden        ErrorKind = utils.CodeForbidden
	KindStorage          ErrorKind = utils.CodeStorage
)

type DomainError struct {
	Kind    ErrorKind
	Message string
	Details map[string]string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewNotFound(resource string) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

func NewValidation(field, message string) *DomainError {
	return &DomainError{
		Kind:    KindValidation,
		Message: utils.ErrValidationFailed,
		Details: map[string]string{field: message},
	}
}

func NewCapacityExceeded(remaining int) *DomainError {
	if remaining < 0 {
		remaining = 0
	}
	return &DomainError{
		Kind:    KindCapacityExceeded,
		Message: "tour is fully booked for this date",
		Details: map[string]string{"remaining": strconv.Itoa(remaining)},
	}
}

func NewDuplicateReview() *DomainError {
	return &DomainError{
		Kind:    KindDuplicateReview,
		Message: "you have already reviewed this tour",
	}
}

func NewForbidden(message string) *DomainError {
	return &DomainError{
		Kind:    KindForbidden,
		Message: message,
	}
}

func newStorage(err error) *DomainError {
	return &DomainError{
		Kind:    KindStorage,
		Message: err.Error(),
	}
}

package httperr

import (
	"errors"

	"gorm.io/gorm"
)

// Kind groups business errors by how callers should react to them.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "slot_conflict"
	KindNotFound   Kind = "not_found"
	KindClosed     Kind = "closed"
	KindInternal   Kind = "internal"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness is a validation failure identified by code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrClosed(code string) error {
	return BusinessError{Kind: KindClosed, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf classifies any error. Storage-level not-found and unique
// violations are folded into their business kinds.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}

	if IsUniqueViolation(err) || IsExclusionConflict(err) {
		return KindConflict
	}

	return KindInternal
}

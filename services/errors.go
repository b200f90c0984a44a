package services

import (
	"errors"

	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindBadRequest   ErrorKind = "bad_request"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not_found"
	KindInternal     ErrorKind = "internal"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrServiceHasOrders   = &Error{Kind: KindBadRequest, Message: "service has existing orders and cannot be deleted"}
	ErrUserHasOrders      = &Error{Kind: KindBadRequest, Message: "user has existing orders and cannot be deleted"}
	ErrOrderNotEditable   = &Error{Kind: KindBadRequest, Message: "only pending orders can be edited"}
	ErrOrderNotCancelable = &Error{Kind: KindBadRequest, Message: "only pending or rejected orders can be cancelled"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
	ErrAdminRequired      = &Error{Kind: KindUnauthorized, Message: "admin access required"}
	ErrLastAdmin          = &Error{Kind: KindBadRequest, Message: "the last admin cannot be deleted"}
)

func NewBadRequestError(message string) error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func NewNotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewInternalError(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

func AsError(err error) (*Error, bool) {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

// fromDB classifies a gorm error. notFound is used for gorm.ErrRecordNotFound.
func fromDB(err error, notFound, fallback string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewNotFoundError(notFound)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: KindBadRequest, Message: "referenced record does not exist or is still in use", Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindBadRequest, Message: "record already exists", Err: err}
	default:
		return NewInternalError(fallback, err)
	}
}

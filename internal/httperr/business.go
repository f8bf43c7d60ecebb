package httperr

import (
	"errors"
	"net/http"
)

// BusinessError is a rule violation raised by a usecase. Status is the HTTP
// status the handler layer answers with; zero means 400.
type BusinessError struct {
	Code    string
	Status  int
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func (e BusinessError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusBadRequest
	}
	return e.Status
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// E builds a BusinessError with an explicit status and message.
func E(status int, code, message string) error {
	return BusinessError{Code: code, Status: status, Message: message}
}

func NotFoundErr(code, message string) error {
	return E(http.StatusNotFound, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

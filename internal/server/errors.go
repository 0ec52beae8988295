package server

import (
	"net/http"

	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
)

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch jerrors.GetCode(err) {
	case jerrors.ErrCodeInvalidInput, jerrors.ErrCodeInvalidFormat, jerrors.ErrCodeInvalidRow:
		return http.StatusBadRequest
	case jerrors.ErrCodeNoValidPartition:
		return http.StatusUnprocessableEntity
	case jerrors.ErrCodeSearchTooLarge:
		return http.StatusRequestEntityTooLarge
	case jerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case jerrors.ErrCodeUnsupported:
		return http.StatusMethodNotAllowed
	}
	return http.StatusInternalServerError
}

func errNotFound(path string) error {
	return jerrors.New(jerrors.ErrCodeNotFound, "no route for %s", path)
}

func errMethodNotAllowed(method, path string) error {
	return jerrors.New(jerrors.ErrCodeUnsupported, "%s not allowed on %s", method, path)
}

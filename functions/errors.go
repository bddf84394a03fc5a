package functions

import (
	"errors"
	"net/http"

	"github.com/kasuganosora/datapad/model"
	"gorm.io/gorm"
)

var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrNotFound         = errors.New("not found")
	// ErrMultipleFound means a lookup that must be unique matched several
	// records. The data is corrupt; callers never pick one.
	ErrMultipleFound   = errors.New("invariant violation")
	ErrAlreadyExists   = errors.New("already exists")
	ErrUnknownFunction = errors.New("unknown function")
)

// statusFor maps a handler error to the response status. Everything the
// handlers report is a server error except malformed records, duplicate
// keys and unknown function names.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidRecord):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownFunction):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

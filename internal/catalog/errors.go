package catalog

import (
	"errors"
	"sort"
	"strings"
)

// MsgIncomplete is the notice shown when a required field is missing.
const MsgIncomplete = "Mohon lengkapi semua field yang wajib diisi!"

var (
	// ErrNoCatalog indicates the product slot has never been written.
	ErrNoCatalog = errors.New("catalog: product slot empty")
	// ErrCorruptCatalog indicates the product slot could not be decoded.
	ErrCorruptCatalog = errors.New("catalog: product slot corrupt")
	// ErrProductNotFound indicates no product matches the id.
	ErrProductNotFound = errors.New("catalog: product not found")
	// ErrNotConfirmed indicates a delete was requested without confirmation.
	ErrNotConfirmed = errors.New("catalog: delete not confirmed")
)

// ValidationError lists the offending fields of a rejected ProductInput.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "catalog: validation failed: " + strings.Join(names, ", ")
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

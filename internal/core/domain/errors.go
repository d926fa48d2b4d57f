package domain

import (
	"errors"
	"fmt"
)

// Error kinds for the certification lifecycle. Adapters match on the kind
// with IsKind; the HTTP layer maps each kind to a status code.
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrReportNotFound   = errors.New("certification report not found")
	ErrInvalidInput     = errors.New("invalid input")
	// ErrUnprocessableDocument marks documents that were stored fine but
	// cannot yield analyzable text: bad encoding, no extractable pages.
	ErrUnprocessableDocument = errors.New("document cannot be processed")
	ErrTemporary             = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is; use errors.As on the concrete types
// for details.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrSizeUnavailable = errors.New("size unavailable")
	ErrNotConfirmed    = errors.New("deletion not confirmed")
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a product or sale ID that is not in the ledger.
type NotFoundError struct {
	Kind string // "product" or "sale"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// SizeUnavailableError reports a size with no stock for a product that has
// stock in other sizes.
type SizeUnavailableError struct {
	ProductID string
	Size      string
	Available []string
}

func (e *SizeUnavailableError) Error() string {
	return fmt.Sprintf("size %q of product %s is not available (in stock: %s)",
		e.Size, e.ProductID, strings.Join(e.Available, ", "))
}

func (e *SizeUnavailableError) Is(target error) bool { return target == ErrSizeUnavailable }

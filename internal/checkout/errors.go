package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart marks an invariant breach: a populated session whose
	// snapshot turned out empty at finalization. The empty state is terminal,
	// so this should be unreachable.
	ErrEmptyCart = errors.New("cart is empty, nothing to finalize")

	// ErrSessionTerminal is returned for operations on an empty or already
	// finalized session.
	ErrSessionTerminal = errors.New("checkout session is terminal")

	// ErrAddressResolving rejects submission while an address lookup is in
	// flight; the form still holds placeholder data.
	ErrAddressResolving = errors.New("address lookup in progress")
)

// ValidationError names the first required field missing from the form.
type ValidationError struct {
	Field string
	Label string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field missing: %s", e.Field)
}

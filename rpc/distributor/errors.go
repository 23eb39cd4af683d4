package distributor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/distributor-contract/contracts/distributor/distributorconst"
)

// Errors returned by the contract methods, see ParseFault.
var (
	ErrUnauthorized        = errors.New(distributorconst.ErrUnauthorized)
	ErrInvalidAmount       = errors.New(distributorconst.ErrInvalidAmount)
	ErrInvalidIdentity     = errors.New(distributorconst.ErrInvalidIdentity)
	ErrInsufficientBalance = errors.New(distributorconst.ErrInsufficientBalance)
	ErrInvalidAsset        = errors.New(distributorconst.ErrInvalidAsset)
	ErrTransferFailed      = errors.New(distributorconst.ErrTransferFailed)
)

var faultErrors = []error{
	ErrUnauthorized,
	ErrInvalidAmount,
	ErrInvalidIdentity,
	ErrInsufficientBalance,
	ErrInvalidAsset,
	ErrTransferFailed,
}

// ParseFault maps the exception of a FAULTed invocation to one of the
// contract errors. Exceptions not produced by the contract are returned
// as is. Empty exception gives nil.
func ParseFault(exception string) error {
	if exception == "" {
		return nil
	}
	for _, err := range faultErrors {
		if strings.Contains(exception, err.Error()) {
			return fmt.Errorf("%w: %s", err, exception)
		}
	}
	return errors.New(exception)
}

// CheckFault is like ParseFault but wraps an error returned by the actor or
// the invoker, e.g. from a test invocation failing during transaction
// creation.
func CheckFault(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range faultErrors {
		if errors.Is(err, known) {
			return err
		}
		if strings.Contains(err.Error(), known.Error()) {
			return fmt.Errorf("%w: %w", known, err)
		}
	}
	return err
}

package repository

import "errors"

// ErrNoRowsAffected reports an insert that the database accepted without
// writing a row
var ErrNoRowsAffected = errors.New("unexpected error: no rows affected")

// StoreError is the single failure kind returned by repository operations.
// Error returns the underlying message unchanged; Op names the failed step.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err, returning nil for a nil err
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err carries a StoreError in its chain
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

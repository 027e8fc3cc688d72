package errors

import (
	"fmt"
	"strings"
)

// ValidationError carries the full ordered list of input problems found in a
// submitted payload. All checks run; the list is never partial.
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

func ValidationErr(errs []string) ValidationError {
	return ValidationError{
		Errors: errs,
	}
}

type NotFoundError struct {
	Type string
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Type, e.Name)
}

func NotFoundErr(t, name string) NotFoundError {
	return NotFoundError{
		Type: t,
		Name: name,
	}
}

// UnauthorizedError signals a destructive operation attempted without the
// configured admin secret.
type UnauthorizedError struct{}

func (e UnauthorizedError) Error() string {
	return "unauthorized"
}

func UnauthorizedErr() UnauthorizedError {
	return UnauthorizedError{}
}

// StoreError wraps an underlying persistence failure. It is logged server-side
// with full detail; clients only ever see a generic message.
type StoreError struct {
	Op  string
	Err error
}

func (e StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e StoreError) Unwrap() error {
	return e.Err
}

func StoreErr(op string, err error) StoreError {
	return StoreError{
		Op:  op,
		Err: err,
	}
}

// Package errs provides the standardized error types used across the application.
// It implements a consistent pattern for error creation, formatting, and unwrapping.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) usable with errors.Is
//   - A struct type carrying error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for classification
//
// Domain packages build their own sentinels on top of these types so that callers
// can distinguish "not found" conditions from validation failures and state
// conflicts without string matching.
package errs

// Package errs provides the standardized error types used across the
// food-delivery application.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsInvalid) usable with errors.Is
//   - a struct carrying the error details
//   - constructors with and without an underlying cause
//   - Error() for formatting and Unwrap() for classification
//
// Messages are sanitized to a single line so they can be logged safely.
package errs

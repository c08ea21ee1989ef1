// Package errs provides standardized error types shared across the dispatch
// application.
//
// Each error type follows a consistent pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) used with errors.Is
//   - a struct type carrying error details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for classification
//
// Validation failures (required/invalid/out-of-range) are raised at
// construction time and never partially applied. ObjectNotFound is reserved
// for storage lookups that legitimately found nothing; callers decide
// whether that is an error or a "nothing to do" outcome.
package errs

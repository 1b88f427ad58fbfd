// Package result is the envelope external ports return instead of failing:
// network and vendor failures are data at the port boundary.
package result

// Result holds either Data or a non-nil Err.
type Result[T any] struct {
	Data T
	Err  error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Data: v}
}

// Fail wraps a failure.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Failed reports whether the call failed.
func (r Result[T]) Failed() bool { return r.Err != nil }

// Unwrap converts the envelope into Go's (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.Data, r.Err
}

package api

// Result is the uniform envelope returned for every API call. Success or
// failure, callers inspect Success and never receive a raised error from
// this package.
type Result[T any] struct {
	// Success reports whether the call completed and the payload decoded.
	Success bool

	// Data holds the decoded payload. Only meaningful when Success is true.
	Data T

	// Message is a human-readable failure reason when Success is false.
	Message string
}

// Ok builds a successful Result carrying data.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failed Result with a message.
func Fail[T any](message string) Result[T] {
	return Result[T]{Success: false, Message: message}
}

func success[T any](data T) Result[T] { return Ok(data) }

func failure[T any](message string) Result[T] { return Fail[T](message) }

// Narrow converts a Result of one payload type into another by applying fn
// to the data on success. Failures pass through with the message intact.
func Narrow[A, B any](r Result[A], fn func(A) B) Result[B] {
	if !r.Success {
		return Fail[B](r.Message)
	}
	return Ok(fn(r.Data))
}

package graph

// Result is the tagged union delivered to observers: either a successful
// value or a failure. Kept as a plain struct (not an interface) so it is
// cheap to copy into every observer callback.
type Result struct {
	Value   any
	Err     error
	Failure bool
}

func Success(v any) Result { return Result{Value: v} }
func Failed(err error) Result { return Result{Err: err, Failure: true} }

func (r Result) IsFailure() bool { return r.Failure }

// Package options implements generic functional options.
//
// A package declares its option type as an alias:
//
//	type DecoderOption = options.Option[*DecoderConfig]
//
// and builds options with New (fallible) or NoError (infallible). Apply runs them
// in order and stops at the first error.
package options

// Option configures a target of type T.
type Option[T any] interface {
	apply(target T) error
}

// Func adapts a plain function to Option.
type Func[T any] func(target T) error

func (f Func[T]) apply(target T) error {
	return f(target)
}

// New creates an option that may reject its input.
func New[T any](fn func(T) error) Option[T] {
	return Func[T](fn)
}

// NoError creates an option that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return Func[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order. Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

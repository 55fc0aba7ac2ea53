// Package options implements generic functional options shared by the
// configurable types in brc (tokenizers, tables, the top-level runner).
package options

// Option configures a target of type T. Options may reject invalid values by
// returning an error from apply.
type Option[T any] interface {
	apply(T) error
}

// Validator is implemented by targets that check their own invariants once
// every option has been applied.
type Validator interface {
	Validate() error
}

// Func adapts a plain function to the Option interface.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may fail.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a setter that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts in order and stops at the first error.
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

// ApplyAndValidate applies opts and then validates the resulting target.
func ApplyAndValidate[T Validator](target T, opts ...Option[T]) error {
	if err := Apply(target, opts...); err != nil {
		return err
	}

	return target.Validate()
}

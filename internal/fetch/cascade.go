package fetch

import "context"

// Step is one named attempt in an ordered cascade.
type Step[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, bool)
}

// FirstSuccess runs steps in order and returns the value and name of the first
// that reports success. Later steps are never run. ok is false if every step fails.
func FirstSuccess[T any](ctx context.Context, steps []Step[T]) (value T, name string, ok bool) {
	for _, s := range steps {
		if v, ok := s.Run(ctx); ok {
			return v, s.Name, true
		}
	}
	var zero T
	return zero, "", false
}

package model

// Decorator adjusts a model descriptor after the builder has produced it and
// before it is cached or rendered. Decorators must be deterministic.
type Decorator interface {
	Decorate(*ModelDescriptor) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*ModelDescriptor) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(desc *ModelDescriptor) error {
	return fn(desc)
}

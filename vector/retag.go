package vector

// retagged delegates storage to the wrapped vector while reporting a
// different execution system.
type retagged[T Element] struct {
	Mutable[T]
	sys System
}

func (r retagged[T]) System() System { return r.sys }

// Retag returns a view of v bound to sys. Dispatch follows the
// reported system, so retagging onto a user-defined system routes the
// algorithms through that system's hooks while reads and writes still
// land in v's storage.
func Retag[T Element](v Mutable[T], sys System) Mutable[T] {
	return retagged[T]{Mutable: v, sys: sys}
}

package ecs

import "github.com/milk9111/customgravity/ecs/component"

// Add attaches value to e, replacing any existing component of the same kind.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	v := value
	return w.AddComponent(e, handle.Kind().ID(), &v)
}

// Remove detaches the component from e.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.Kind().ID())
}

// Has reports whether e carries the component.
func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.Kind().ID())
}

// Get returns a copy of the component value.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	ptr, ok := GetRef(w, e, handle)
	if !ok {
		return zero, false
	}
	return *ptr, true
}

// GetRef returns a pointer to the stored component so it can be edited in place.
func GetRef[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	value, ok := w.GetComponent(e, handle.Kind().ID())
	if !ok {
		return nil, false
	}
	ptr, ok := value.(*T)
	return ptr, ok
}

// ForEach calls fn for every entity carrying the component. The set is
// snapshotted first, so fn may add or remove components.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	store := w.store(handle.Kind().ID(), false)
	if store.Len() == 0 {
		return
	}
	ents := append([]Entity(nil), store.Entities()...)
	for _, e := range ents {
		if ptr, ok := GetRef(w, e, handle); ok {
			fn(e, ptr)
		}
	}
}

// Singleton returns the component stored on the first entity that carries it.
func Singleton[T any](w *World, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	e, ok := w.First(handle.Kind())
	if !ok {
		return zero, false
	}
	return Get(w, e, handle)
}

// SetSingleton overwrites the singleton, creating a holder entity when none exists.
func SetSingleton[T any](w *World, handle component.ComponentHandle[T], value T) (Entity, error) {
	e, ok := w.First(handle.Kind())
	if !ok {
		e = w.CreateEntity()
	}
	return e, Add(w, e, handle, value)
}

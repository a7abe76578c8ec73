// Package index provides an insertion-ordered map keyed by string.
package index

import (
	"container/list"
	"iter"
)

// Map is an ordered map from string keys to values of type V.
//
// Iteration order is insertion order. Updating an existing key keeps
// its position; use MoveToBack to refresh it. The zero value is not
// usable; call New.
type Map[V any] struct {
	order *list.List
	items map[string]*list.Element
}

type pair[V any] struct {
	key string
	val V
}

// New creates an empty ordered map.
func New[V any]() *Map[V] {
	return &Map[V]{
		order: list.New(),
		items: make(map[string]*list.Element),
	}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.items)
}

// Get returns the value for key.
func (m *Map[V]) Get(key string) (V, bool) {
	el, ok := m.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(pair[V]).val, true
}

// Put inserts key at the back, or updates its value in place if it
// already exists.
func (m *Map[V]) Put(key string, val V) {
	if el, ok := m.items[key]; ok {
		el.Value = pair[V]{key: key, val: val}
		return
	}
	m.items[key] = m.order.PushBack(pair[V]{key: key, val: val})
}

// MoveToBack moves key to the back of the iteration order.
// It reports whether the key was present.
func (m *Map[V]) MoveToBack(key string) bool {
	el, ok := m.items[key]
	if !ok {
		return false
	}
	m.order.MoveToBack(el)
	return true
}

// Delete removes key. It reports whether the key was present.
func (m *Map[V]) Delete(key string) bool {
	el, ok := m.items[key]
	if !ok {
		return false
	}
	delete(m.items, key)
	m.order.Remove(el)
	return true
}

// Oldest returns the front entry of the iteration order.
func (m *Map[V]) Oldest() (string, V, bool) {
	el := m.order.Front()
	if el == nil {
		var zero V
		return "", zero, false
	}
	p := el.Value.(pair[V])
	return p.key, p.val, true
}

// FromOldest iterates entries from oldest to newest.
//
// The map must not be mutated during iteration; collect keys first
// when deleting.
func (m *Map[V]) FromOldest() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for el := m.order.Front(); el != nil; el = el.Next() {
			p := el.Value.(pair[V])
			if !yield(p.key, p.val) {
				return
			}
		}
	}
}

// Keys returns all keys from oldest to newest.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, len(m.items))
	for key := range m.FromOldest() {
		keys = append(keys, key)
	}
	return keys
}

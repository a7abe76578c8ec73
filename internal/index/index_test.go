package index

import (
	"slices"
	"testing"
)

func TestMapPutGet(t *testing.T) {
	t.Parallel()

	m := New[int]()
	m.Put("a", 1)
	m.Put("b", 2)

	if got, ok := m.Get("a"); !ok || got != 1 {
		t.Fatalf("Get(a) = %d, %v, want 1, true", got, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Fatal("Get(missing) ok = true, want false")
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
}

func TestMapOrder(t *testing.T) {
	t.Parallel()

	m := New[int]()
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("c", 3)

	want := []string{"a", "b", "c"}
	if got := m.Keys(); !slices.Equal(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
}

func TestMapUpdateKeepsPosition(t *testing.T) {
	t.Parallel()

	m := New[int]()
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("a", 10)

	want := []string{"a", "b"}
	if got := m.Keys(); !slices.Equal(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if got, _ := m.Get("a"); got != 10 {
		t.Fatalf("Get(a) = %d, want 10", got)
	}
}

func TestMapMoveToBack(t *testing.T) {
	t.Parallel()

	m := New[int]()
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("c", 3)

	if !m.MoveToBack("a") {
		t.Fatal("MoveToBack(a) = false, want true")
	}
	if m.MoveToBack("missing") {
		t.Fatal("MoveToBack(missing) = true, want false")
	}

	want := []string{"b", "c", "a"}
	if got := m.Keys(); !slices.Equal(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
}

func TestMapDelete(t *testing.T) {
	t.Parallel()

	m := New[int]()
	m.Put("a", 1)
	m.Put("b", 2)

	if !m.Delete("a") {
		t.Fatal("Delete(a) = false, want true")
	}
	if m.Delete("a") {
		t.Fatal("Delete(a) twice = true, want false")
	}
	if _, ok := m.Get("a"); ok {
		t.Fatal("Get(a) after delete ok = true, want false")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestMapOldest(t *testing.T) {
	t.Parallel()

	m := New[int]()
	if _, _, ok := m.Oldest(); ok {
		t.Fatal("Oldest() on empty map ok = true, want false")
	}

	m.Put("a", 1)
	m.Put("b", 2)

	key, val, ok := m.Oldest()
	if !ok || key != "a" || val != 1 {
		t.Fatalf("Oldest() = %q, %d, %v, want a, 1, true", key, val, ok)
	}

	m.MoveToBack("a")
	key, _, _ = m.Oldest()
	if key != "b" {
		t.Fatalf("Oldest() after MoveToBack = %q, want b", key)
	}
}

func TestMapFromOldest(t *testing.T) {
	t.Parallel()

	m := New[int]()
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("c", 3)

	var keys []string
	var vals []int
	for k, v := range m.FromOldest() {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	if !slices.Equal(keys, []string{"a", "b", "c"}) {
		t.Fatalf("FromOldest keys = %v", keys)
	}
	if !slices.Equal(vals, []int{1, 2, 3}) {
		t.Fatalf("FromOldest vals = %v", vals)
	}

	// Early break should not panic or leak.
	for range m.FromOldest() {
		break
	}
}

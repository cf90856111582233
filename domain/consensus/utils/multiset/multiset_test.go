package multiset

import (
	"testing"
)

func TestMultisetOrderIndependence(t *testing.T) {
	first := New()
	first.Add([]byte("a"))
	first.Add([]byte("b"))

	second := New()
	second.Add([]byte("b"))
	second.Add([]byte("a"))

	if !first.Hash().Equal(second.Hash()) {
		t.Fatalf("TestMultisetOrderIndependence: insertion order changed the hash")
	}

	second.Add([]byte("c"))
	if first.Hash().Equal(second.Hash()) {
		t.Fatalf("TestMultisetOrderIndependence: different sets have the same hash")
	}
	second.Remove([]byte("c"))
	if !first.Hash().Equal(second.Hash()) {
		t.Fatalf("TestMultisetOrderIndependence: Remove did not undo Add")
	}
}

func TestMultisetClone(t *testing.T) {
	ms := New()
	ms.Add([]byte("data"))
	hash := ms.Hash()

	clone := ms.Clone()
	clone.Add([]byte("more data"))
	if !ms.Hash().Equal(hash) {
		t.Fatalf("TestMultisetClone: modifying a clone changed the original")
	}
}

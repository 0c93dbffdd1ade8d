package pqueue

import "testing"

func TestPopOrdersByKey(t *testing.T) {
	q := New()
	q.Push(3.0, "c")
	q.Push(1.0, "a")
	q.Push(2.0, "b")

	var got []string
	for q.Len() > 0 {
		v, _, _ := q.Pop()
		got = append(got, v.(string))
	}

	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Pop order = %v, want %v", got, want)
		}
	}
}

func TestPopTieBreaksByInsertionOrder(t *testing.T) {
	q := New()
	q.Push(1.0, "first")
	q.Push(1.0, "second")
	q.Push(1.0, "third")

	for _, want := range []string{"first", "second", "third"} {
		v, _, ok := q.Pop()
		if !ok || v.(string) != want {
			t.Errorf("Pop() = %v, want %v", v, want)
		}
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	q := New()
	q.Push(5.0, "x")

	v, k, ok := q.Peek()
	if !ok || v.(string) != "x" || k != 5.0 {
		t.Fatalf("Peek() = %v, %v, %v", v, k, ok)
	}
	if q.Len() != 1 {
		t.Errorf("Peek should not remove the element, Len() = %d", q.Len())
	}
}

func TestPopOnEmptyQueue(t *testing.T) {
	q := New()
	if _, _, ok := q.Pop(); ok {
		t.Errorf("Pop() on empty queue should report ok = false")
	}
}

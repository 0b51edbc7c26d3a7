package queue

import "testing"

func TestReadyQueueFIFOOrder(t *testing.T) {
	q := New()
	for i := 1; i <= 5; i++ {
		q.Push(i)
	}

	for i := 1; i <= 5; i++ {
		v, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() returned ok=false while %d more elements were expected", 6-i)
		}
		if v.(int) != i {
			t.Fatalf("Pop() = %d, want %d", v, i)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Fatal("Pop() on an empty queue returned ok=true")
	}
}

func TestReadyQueueEmpty(t *testing.T) {
	q := New()
	if !q.Empty() {
		t.Fatal("a freshly created queue should be Empty()")
	}
	q.Push("x")
	if q.Empty() {
		t.Fatal("queue with one element should not be Empty()")
	}
}

func TestReadyQueueSize(t *testing.T) {
	q := New()
	if q.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", q.Size())
	}
	for i := 0; i < 3; i++ {
		q.Push(i)
	}
	if q.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", q.Size())
	}
	q.Pop()
	if q.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", q.Size())
	}
}

func TestReadyQueueLockedVariantsMatchUnlocked(t *testing.T) {
	q := New()
	q.PushLocked(1)
	q.PushLocked(2)
	if q.SizeLocked() != 2 {
		t.Fatalf("SizeLocked() = %d, want 2", q.SizeLocked())
	}
	if q.EmptyLocked() {
		t.Fatal("EmptyLocked() should be false with elements queued")
	}
	v, ok := q.PopLocked()
	if !ok || v.(int) != 1 {
		t.Fatalf("PopLocked() = (%v, %v), want (1, true)", v, ok)
	}
}

func TestReadyQueueDestroy(t *testing.T) {
	q := New()
	q.Push(1)
	q.Push(2)
	q.Destroy()
	if !q.Empty() {
		t.Fatal("queue should be Empty() after Destroy()")
	}
}

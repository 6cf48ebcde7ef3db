package deque

import (
	"testing"
)

var _ Deque[int] = (*ArrDeque[int])(nil)

func collect(d *ArrDeque[int]) []int {
	var out []int
	d.Traverse(func(i int, item *int) {
		out = append(out, *item)
	})
	return out
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestArrDeque_Capacity(t *testing.T) {
	for _, c := range []struct{ in, want int }{{1, 8}, {8, 8}, {9, 16}, {4000, 4000}, {0, 8}} {
		if got := NewArrDeque[int](c.in).Capacity(); got != c.want {
			t.Errorf("capacity %d: got %d, want %d", c.in, got, c.want)
		}
	}
}

func TestArrDeque_Funcs(t *testing.T) {
	deque := NewArrDeque[int](8)
	for i := 0; i < 4; i++ {
		deque.AddLast(i)
	}
	for i := 1; i <= 4; i++ {
		deque.AddFirst(-i)
	}
	if !deque.IsFull() || deque.AddLast(100) || deque.AddFirst(100) {
		t.Fatal("deque should be full")
	}
	if got := collect(deque); !equal(got, []int{-4, -3, -2, -1, 0, 1, 2, 3}) {
		t.Fatalf("traverse: %v", got)
	}

	if v, ok := deque.RemoveFirst(); !ok || v != -4 {
		t.Errorf("remove first: %d %v", v, ok)
	}
	if v, ok := deque.RemoveLast(); !ok || v != 3 {
		t.Errorf("remove last: %d %v", v, ok)
	}
	deque.Set(0, 30)
	if deque.Get(0) != 30 || deque.Get(deque.Size()-1) != 2 {
		t.Errorf("get/set: %v", collect(deque))
	}

	for !deque.IsEmpty() {
		deque.RemoveLast()
	}
	if _, ok := deque.RemoveFirst(); ok {
		t.Error("remove from empty deque")
	}
	if _, ok := deque.RemoveLast(); ok {
		t.Error("remove from empty deque")
	}
}

// 环绕数组末尾后顺序不变
func TestArrDeque_Wrap(t *testing.T) {
	deque := NewArrDeque[int](8)
	for i := 0; i < 100; i++ {
		deque.Push(i)
	}
	if deque.Size() != 8 {
		t.Fatalf("size %d", deque.Size())
	}
	if got := collect(deque); !equal(got, []int{92, 93, 94, 95, 96, 97, 98, 99}) {
		t.Errorf("traverse: %v", got)
	}
	if got := deque.Last(3); !equal(got, []int{97, 98, 99}) {
		t.Errorf("last 3: %v", got)
	}
	if got := deque.Last(20); len(got) != 8 || got[0] != 92 {
		t.Errorf("last 20: %v", got)
	}
	deque.Clear()
	if !deque.IsEmpty() || len(deque.Last(3)) != 0 {
		t.Error("clear")
	}
}

func TestArrDeque_GetOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	deque := NewArrDeque[int](8)
	deque.AddLast(1)
	deque.Get(1)
}

func BenchmarkArrDeque_AddFirst(b *testing.B) {
	deque := NewArrDeque[float64](4000)
	for i := 0; i < b.N; i++ {
		deque.AddFirst(1000)
		deque.RemoveFirst()
	}
}

func BenchmarkArrDeque_Push(b *testing.B) {
	deque := NewArrDeque[float64](4000)
	for i := 0; i < b.N; i++ {
		deque.Push(1000)
	}
}

package deque

const (
	// 数组大小基数
	base = 8
)

// ArrDeque 环形数组，start 为队首在数组中的位置
type ArrDeque[T any] struct {
	arr      []T
	start    int
	size     int
	capacity int
}

// 工厂方法，容量向上取整到 base 的倍数
func NewArrDeque[T any](capacity int) *ArrDeque[T] {
	if capacity < 1 {
		capacity = 1
	}
	remainder := capacity % base
	if remainder != 0 {
		capacity = capacity - remainder + base
	}
	return &ArrDeque[T]{
		arr:      make([]T, capacity),
		capacity: capacity,
	}
}

func (ad *ArrDeque[T]) index(i int) int {
	return (ad.start + i) % ad.capacity
}

func (ad *ArrDeque[T]) Size() int {
	return ad.size
}

func (ad *ArrDeque[T]) Capacity() int {
	return ad.capacity
}

func (ad *ArrDeque[T]) Get(i int) T {
	if i < 0 || i >= ad.size {
		panic("index out of length")
	}
	return ad.arr[ad.index(i)]
}

func (ad *ArrDeque[T]) Set(i int, item T) {
	if i < 0 || i >= ad.size {
		panic("index out of length")
	}
	ad.arr[ad.index(i)] = item
}

func (ad *ArrDeque[T]) Traverse(f func(i int, item *T)) {
	for i := 0; i < ad.size; i++ {
		f(i, &ad.arr[ad.index(i)])
	}
}

func (ad *ArrDeque[T]) AddLast(item T) bool {
	if ad.size == ad.capacity {
		return false
	}
	ad.arr[ad.index(ad.size)] = item
	ad.size++
	return true
}

func (ad *ArrDeque[T]) RemoveLast() (T, bool) {
	var zero T
	if ad.size == 0 {
		return zero, false
	}
	ad.size--
	k := ad.index(ad.size)
	item := ad.arr[k]
	ad.arr[k] = zero
	return item, true
}

func (ad *ArrDeque[T]) AddFirst(item T) bool {
	if ad.size == ad.capacity {
		return false
	}
	ad.start = (ad.start - 1 + ad.capacity) % ad.capacity
	ad.arr[ad.start] = item
	ad.size++
	return true
}

func (ad *ArrDeque[T]) RemoveFirst() (T, bool) {
	var zero T
	if ad.size == 0 {
		return zero, false
	}
	item := ad.arr[ad.start]
	ad.arr[ad.start] = zero
	ad.start = (ad.start + 1) % ad.capacity
	ad.size--
	return item, true
}

// Push 队列满时先丢弃队首
func (ad *ArrDeque[T]) Push(item T) {
	if ad.size == ad.capacity {
		ad.RemoveFirst()
	}
	ad.AddLast(item)
}

// Last 队尾的 n 个元素，按入队顺序
func (ad *ArrDeque[T]) Last(n int) []T {
	if n > ad.size {
		n = ad.size
	}
	if n < 0 {
		n = 0
	}
	out := make([]T, 0, n)
	for i := ad.size - n; i < ad.size; i++ {
		out = append(out, ad.arr[ad.index(i)])
	}
	return out
}

func (ad *ArrDeque[T]) Clear() {
	var zero T
	for i := range ad.arr {
		ad.arr[i] = zero
	}
	ad.start, ad.size = 0, 0
}

func (ad *ArrDeque[T]) IsFull() bool {
	return ad.size == ad.capacity
}

func (ad *ArrDeque[T]) IsEmpty() bool {
	return ad.size == 0
}

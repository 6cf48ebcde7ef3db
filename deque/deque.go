/**
 *
 * 利用数组实现的有界双端队列，保存计算过程中推送过的快照，供前端重连后回放
 *
 */

package deque

type Deque[T any] interface {
	// 队列的长度
	Size() int

	// 获取队列中对应下标的元素
	Get(i int) T

	// 设定队列中对应下标的元素
	Set(i int, item T)

	// 正向遍历
	Traverse(f func(i int, item *T))

	// 在队列结尾增加一个元素，队列满时返回 false
	AddLast(item T) bool

	// 在队列结尾删除一个元素
	RemoveLast() (T, bool)

	// 在队列头部增加一个元素，队列满时返回 false
	AddFirst(item T) bool

	// 在队列头部删除一个元素
	RemoveFirst() (T, bool)

	IsFull() bool

	IsEmpty() bool
}

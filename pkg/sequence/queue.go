package sequence

// PriorityItem is the handle returned by Enqueue. It can be passed to Remove
// for as long as the value is queued.
type PriorityItem[T any] struct {
	Value T
	index int
}

// Queued reports whether the value is still in a queue.
func (it *PriorityItem[T]) Queued() bool { return it != nil && it.index >= 0 }

// PriorityQueue is an indexed binary min-heap: the value for which less holds
// against every other value comes out first. Not safe for concurrent use.
type PriorityQueue[T any] struct {
	items []*PriorityItem[T]
	less  func(a, b T) bool
}

func NewPriorityQueue[T any](less func(a, b T) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{less: less}
}

func (q *PriorityQueue[T]) Len() int      { return len(q.items) }
func (q *PriorityQueue[T]) IsEmpty() bool { return len(q.items) == 0 }

func (q *PriorityQueue[T]) Enqueue(value T) *PriorityItem[T] {
	it := &PriorityItem[T]{Value: value, index: len(q.items)}
	q.items = append(q.items, it)
	q.up(it.index)
	return it
}

func (q *PriorityQueue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0].Value, true
}

func (q *PriorityQueue[T]) Dequeue() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	head := q.items[0]
	q.removeAt(0)
	return head.Value, true
}

// Remove takes the item out of the queue. It reports false when the item was
// not queued here, which makes a second Remove harmless.
func (q *PriorityQueue[T]) Remove(it *PriorityItem[T]) bool {
	if !it.Queued() || it.index >= len(q.items) || q.items[it.index] != it {
		return false
	}
	q.removeAt(it.index)
	return true
}

func (q *PriorityQueue[T]) removeAt(i int) {
	last := len(q.items) - 1
	gone := q.items[i]
	q.swap(i, last)
	q.items[last] = nil
	q.items = q.items[:last]
	gone.index = -1
	if i < last {
		if !q.up(i) {
			q.down(i)
		}
	}
}

func (q *PriorityQueue[T]) swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *PriorityQueue[T]) lessAt(i, j int) bool {
	return q.less(q.items[i].Value, q.items[j].Value)
}

// up moves i towards the root and reports whether it moved.
func (q *PriorityQueue[T]) up(i int) bool {
	start := i
	for i > 0 {
		parent := (i - 1) / 2
		if !q.lessAt(i, parent) {
			break
		}
		q.swap(i, parent)
		i = parent
	}
	return i != start
}

func (q *PriorityQueue[T]) down(i int) {
	n := len(q.items)
	for {
		smallest := i
		if l := 2*i + 1; l < n && q.lessAt(l, smallest) {
			smallest = l
		}
		if r := 2*i + 2; r < n && q.lessAt(r, smallest) {
			smallest = r
		}
		if smallest == i {
			return
		}
		q.swap(i, smallest)
		i = smallest
	}
}

package splice

import (
	"errors"
	"fmt"
	"iter"
)

// ErrCorrupt is wrapped by CheckInvariants when a list's links disagree with its bookkeeping.
var ErrCorrupt = errors.New("splice: list invariant violated")

// List is a singly linked list of nodes stored in an Arena.
//
// A list is either empty (head and tail are Nil) or holds a chain from head to
// tail where tail is the only node whose next is Nil.
type List[V any] struct {
	arena *Arena[V]
	head  NodeRef
	tail  NodeRef
	n     int
}

// New returns a list holding values, backed by its own arena.
func New[V any](values ...V) *List[V] {
	return NewArena[V]().FromValues(values...)
}

// Arena returns the arena backing l.
func (l *List[V]) Arena() *Arena[V] { return l.arena }

// IsEmpty reports whether l holds no nodes.
func (l *List[V]) IsEmpty() bool { return l.head == Nil }

// Len returns the number of nodes in l.
func (l *List[V]) Len() int { return l.n }

// First returns the head node, or Nil.
func (l *List[V]) First() NodeRef { return l.head }

// Last returns the tail node, or Nil.
func (l *List[V]) Last() NodeRef { return l.tail }

// Value returns the value held by ref.
func (l *List[V]) Value(ref NodeRef) V { return l.arena.node(ref).value }

// Next returns the node after ref, or Nil when ref is the tail.
func (l *List[V]) Next(ref NodeRef) NodeRef { return l.arena.node(ref).next }

// Advance follows k next links from ref. It returns Nil if the chain ends first.
func (l *List[V]) Advance(ref NodeRef, k int) NodeRef {
	for ; k > 0 && ref != Nil; k-- {
		ref = l.arena.node(ref).next
	}
	return ref
}

// Push inserts v at the head.
func (l *List[V]) Push(v V) NodeRef {
	l.head = l.arena.alloc(v, l.head)
	if l.tail == Nil {
		l.tail = l.head
	}
	l.n++
	return l.head
}

// Pop removes the head and returns its value. ok is false on an empty list.
func (l *List[V]) Pop() (v V, ok bool) {
	if l.head == Nil {
		return v, false
	}
	ref := l.head
	n := l.arena.node(ref)
	v = n.value
	l.head = n.next
	if l.head == Nil {
		l.tail = Nil
	}
	l.n--
	l.arena.release(ref)
	return v, true
}

// Append inserts v at the tail.
func (l *List[V]) Append(v V) NodeRef {
	ref := l.arena.alloc(v, Nil)
	if l.tail != Nil {
		l.arena.node(l.tail).next = ref
	} else {
		l.head = ref
	}
	l.tail = ref
	l.n++
	return ref
}

// InsertValues puts values in front of the current head, keeping their order.
func (l *List[V]) InsertValues(values ...V) {
	for i := len(values) - 1; i >= 0; i-- {
		l.Push(values[i])
	}
}

// Insert moves every node of other into l, at the head when after is Nil or
// right after the member node after. other is left empty.
func (l *List[V]) Insert(other *List[V], after NodeRef) {
	if other == l {
		panic("splice: cannot insert a list into itself")
	}
	if other.arena != l.arena {
		panic("splice: lists belong to different arenas")
	}
	if other.head == Nil {
		return
	}

	if after == Nil {
		l.arena.node(other.tail).next = l.head
		l.head = other.head
		if l.tail == Nil {
			l.tail = other.tail
		}
	} else {
		l.mustContain(after)
		anchor := l.arena.node(after)
		l.arena.node(other.tail).next = anchor.next
		anchor.next = other.head
		if l.tail == after {
			l.tail = other.tail
		}
	}

	l.n += other.n
	other.head, other.tail, other.n = Nil, Nil, 0
}

// RemoveFirst detaches up to k nodes that follow after (or start at the head
// when after is Nil) and returns them as a new list on the same arena.
// Asking for more nodes than remain is not an error.
func (l *List[V]) RemoveFirst(k int, after NodeRef) *List[V] {
	out := l.arena.NewList()
	if k <= 0 {
		return out
	}

	var first NodeRef
	if after == Nil {
		first = l.head
	} else {
		l.mustContain(after)
		first = l.arena.node(after).next
	}
	if first == Nil {
		return out
	}

	last, taken := first, 1
	for taken < k {
		next := l.arena.node(last).next
		if next == Nil {
			break
		}
		last = next
		taken++
	}

	lastNode := l.arena.node(last)
	rest := lastNode.next
	lastNode.next = Nil

	if after == Nil {
		l.head = rest
	} else {
		l.arena.node(after).next = rest
	}
	if l.tail == last {
		l.tail = after
	}
	l.n -= taken

	out.head, out.tail, out.n = first, last, taken
	return out
}

// Clear releases every node of l back to the arena.
func (l *List[V]) Clear() {
	for l.head != Nil {
		l.Pop()
	}
}

// FindNode returns the first node whose value satisfies pred, or Nil.
func (l *List[V]) FindNode(pred func(V) bool) NodeRef {
	for ref, v := range l.All() {
		if pred(v) {
			return ref
		}
	}
	return Nil
}

// FindNodeBefore returns the predecessor of ref. It returns Nil when ref is
// the head or is not in l.
func (l *List[V]) FindNodeBefore(ref NodeRef) NodeRef {
	if ref == Nil || ref == l.head {
		return Nil
	}
	for prev := l.head; prev != Nil; {
		next := l.arena.node(prev).next
		if next == ref {
			return prev
		}
		prev = next
	}
	return Nil
}

// Contains reports whether ref is a node of l.
func (l *List[V]) Contains(ref NodeRef) bool {
	if ref == Nil {
		return false
	}
	for cur := l.head; cur != Nil; cur = l.arena.node(cur).next {
		if cur == ref {
			return true
		}
	}
	return false
}

// CircularRotate makes to the head by moving the nodes before it behind the
// tail. It returns false when to is not in l.
func (l *List[V]) CircularRotate(to NodeRef) bool {
	if to != Nil && to == l.head {
		return true
	}
	before := l.FindNodeBefore(to)
	if before == Nil {
		return false
	}

	prefix := l.head
	l.arena.node(before).next = Nil
	l.arena.node(l.tail).next = prefix
	l.head = to
	l.tail = before
	return true
}

// All yields each node and its value from head to tail.
func (l *List[V]) All() iter.Seq2[NodeRef, V] {
	return func(yield func(NodeRef, V) bool) {
		for cur := l.head; cur != Nil; {
			n := l.arena.node(cur)
			if !yield(cur, n.value) {
				return
			}
			cur = n.next
		}
	}
}

// Values copies the list's values into a slice.
func (l *List[V]) Values() []V {
	out := make([]V, 0, l.n)
	for _, v := range l.All() {
		out = append(out, v)
	}
	return out
}

// CheckInvariants walks the list and verifies that head, tail and length agree.
func (l *List[V]) CheckInvariants() error {
	if l.head == Nil || l.tail == Nil {
		if l.head != l.tail || l.n != 0 {
			return fmt.Errorf("%w: empty list has head=%d tail=%d len=%d", ErrCorrupt, l.head, l.tail, l.n)
		}
		return nil
	}

	limit := len(l.arena.nodes)
	count := 0
	last := Nil
	for cur := l.head; cur != Nil; cur = l.arena.nodes[cur].next {
		if int(cur) >= limit || !l.arena.nodes[cur].live {
			return fmt.Errorf("%w: chain reaches invalid node %d", ErrCorrupt, cur)
		}
		count++
		if count > limit {
			return fmt.Errorf("%w: cycle detected", ErrCorrupt)
		}
		last = cur
	}

	if last != l.tail {
		return fmt.Errorf("%w: tail is %d but chain ends at %d", ErrCorrupt, l.tail, last)
	}
	if count != l.n {
		return fmt.Errorf("%w: len is %d but chain holds %d nodes", ErrCorrupt, l.n, count)
	}
	return nil
}

func (l *List[V]) mustContain(ref NodeRef) {
	l.arena.node(ref)
	if l.arena.checks && !l.Contains(ref) {
		panic(fmt.Sprintf("splice: node %d is not a member of this list", ref))
	}
}

package splice

import "fmt"

// NodeRef addresses a node inside an Arena. The zero value, Nil, refers to no node.
type NodeRef uint32

// Nil is the "no node" reference.
const Nil NodeRef = 0

type node[V any] struct {
	value V
	next  NodeRef
	live  bool
}

type options struct {
	checks   bool
	capacity int
}

// Option configures an Arena.
type Option func(*options)

// WithChecks enables O(n) membership assertions on anchors.
func WithChecks(enabled bool) Option {
	return func(o *options) {
		o.checks = enabled
	}
}

// WithCapacity preallocates room for n nodes.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// Arena owns the storage for every node of the lists created from it.
// Released slots are reused, so a ref kept after its node was popped may later
// point at an unrelated node.
type Arena[V any] struct {
	nodes  []node[V] // nodes[0] is the Nil sentinel
	free   []NodeRef
	checks bool
}

// NewArena creates an empty arena.
func NewArena[V any](opts ...Option) *Arena[V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Arena[V]{
		nodes:  make([]node[V], 1, o.capacity+1),
		checks: o.checks,
	}
}

// Live returns the number of allocated nodes.
func (a *Arena[V]) Live() int {
	return len(a.nodes) - 1 - len(a.free)
}

// Value returns the value held by ref.
func (a *Arena[V]) Value(ref NodeRef) V {
	return a.node(ref).value
}

// NewList returns an empty list backed by a.
func (a *Arena[V]) NewList() *List[V] {
	return &List[V]{arena: a}
}

// FromValues builds a list holding values in order.
func (a *Arena[V]) FromValues(values ...V) *List[V] {
	l := a.NewList()
	for _, v := range values {
		l.Append(v)
	}
	return l
}

func (a *Arena[V]) alloc(v V, next NodeRef) NodeRef {
	if n := len(a.free); n > 0 {
		ref := a.free[n-1]
		a.free = a.free[:n-1]
		a.nodes[ref] = node[V]{value: v, next: next, live: true}
		return ref
	}
	if uint64(len(a.nodes)) > uint64(^NodeRef(0)) {
		panic("splice: arena exhausted")
	}
	a.nodes = append(a.nodes, node[V]{value: v, next: next, live: true})
	return NodeRef(len(a.nodes) - 1)
}

func (a *Arena[V]) release(ref NodeRef) {
	var zero V
	a.nodes[ref] = node[V]{value: zero}
	a.free = append(a.free, ref)
}

func (a *Arena[V]) node(ref NodeRef) *node[V] {
	if ref == Nil || int(ref) >= len(a.nodes) {
		panic(fmt.Sprintf("splice: invalid node ref %d", ref))
	}
	n := &a.nodes[ref]
	if !n.live {
		panic(fmt.Sprintf("splice: node ref %d was released", ref))
	}
	return n
}

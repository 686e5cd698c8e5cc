// Package topk keeps the K nearest items of a stream without buffering it.
package topk

// DefaultK is the number of films shown on the map.
const DefaultK = 10

type Item[T any] struct {
	Value    T
	Distance float64
}

// Nearest is a bounded list of items ordered by ascending distance. Items
// with equal distance keep the order in which they were inserted.
type Nearest[T any] struct {
	k     int
	items []Item[T]
}

func New[T any](k int) *Nearest[T] {
	if k < 1 {
		k = 1
	}
	return &Nearest[T]{k: k, items: make([]Item[T], 0, k+1)}
}

// Insert offers v at distance d and reports whether it was kept. Once the
// list is full, anything not strictly closer than the current worst item is
// discarded.
func (n *Nearest[T]) Insert(v T, d float64) bool {
	i := 0
	for i < len(n.items) && n.items[i].Distance <= d {
		i++
	}
	if i == n.k {
		return false
	}
	n.items = append(n.items, Item[T]{})
	copy(n.items[i+1:], n.items[i:])
	n.items[i] = Item[T]{Value: v, Distance: d}
	if len(n.items) > n.k {
		n.items = n.items[:n.k]
	}
	return true
}

// Results returns a copy of the items in ascending distance order.
func (n *Nearest[T]) Results() []Item[T] {
	out := make([]Item[T], len(n.items))
	copy(out, n.items)
	return out
}

func (n *Nearest[T]) Len() int { return len(n.items) }

func (n *Nearest[T]) Cap() int { return n.k }

// Worst returns the largest distance held, if any.
func (n *Nearest[T]) Worst() (float64, bool) {
	if len(n.items) == 0 {
		return 0, false
	}
	return n.items[len(n.items)-1].Distance, true
}

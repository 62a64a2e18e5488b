package btree

import "github.com/ssargent/btreering/pkg/status"

// iterFrame pins the node currently being visited at one level of descent
// and the child/key pair within it that is "in progress". On the iterator's
// current level, the key at idx is the current element; if n is internal,
// the next Increment descends into children[idx+1]. On a level above the
// current one, children[idx] is the subtree currently being walked, and the
// key at idx (if idx < len(n.keys)) is the element that follows it.
type iterFrame struct {
	n   *node
	idx int
}

// Iterator is a stable cursor over a Tree's elements in ascending order. The
// zero value is the canonical end iterator. Like the original C library's
// stack-allocated iterator, Iterator is a fixed-size value type safe to copy
// and hold on the stack; unlike the original, mutating the Tree after an
// Iterator is minted marks it stale rather than leaving it to dangle, so
// using a stale Iterator returns status.ErrStaleIterator instead of
// undefined behavior.
type Iterator struct {
	tree  *Tree
	epoch uint64
	level int
	frames [MaxHeightCap]iterFrame
}

// IsEnd reports whether it is the end iterator.
func (it Iterator) IsEnd() bool {
	return it.level == 0 && it.frames[0].n == nil
}

// Equals reports whether a and b denote the same position.
func Equals(a, b Iterator) bool {
	if a.IsEnd() || b.IsEnd() {
		return a.IsEnd() == b.IsEnd()
	}
	if a.level != b.level {
		return false
	}
	for i := 0; i <= a.level; i++ {
		if a.frames[i] != b.frames[i] {
			return false
		}
	}
	return true
}

func (it Iterator) stale() bool {
	return it.tree != nil && it.tree.epoch != it.epoch
}

// Increment advances it to the next element in ascending order, moving it
// to the end iterator if none remains. It returns status.ErrStaleIterator
// if the tree has been mutated since it was minted.
func (it *Iterator) Increment() error {
	if it.IsEnd() {
		return nil
	}
	if it.stale() {
		return status.ErrStaleIterator
	}

	top := it.frames[it.level]
	if !top.n.leaf {
		newIdx := top.idx + 1
		it.frames[it.level].idx = newIdx
		it.pushLeftSpine(top.n.children[newIdx])
		return nil
	}

	it.frames[it.level].idx++
	for it.frames[it.level].idx >= len(it.frames[it.level].n.keys) {
		if it.level == 0 {
			*it = Iterator{}
			return nil
		}
		it.level--
		if it.frames[it.level].idx < len(it.frames[it.level].n.keys) {
			return nil
		}
	}
	return nil
}

// Next returns it advanced by one position, leaving it unmodified. It
// returns the end iterator if it is already at or past the last element.
// Panics are not raised on a stale it; the returned copy carries the same
// stale epoch and will report status.ErrStaleIterator from Increment like
// any other stale iterator.
func (it Iterator) Next() Iterator {
	next := it
	_ = next.Increment()
	return next
}

// pushLeftSpine descends n's leftmost children, pushing a (node, 0) frame at
// every level including n itself, until reaching a leaf.
func (it *Iterator) pushLeftSpine(n *node) {
	for {
		it.level++
		it.frames[it.level] = iterFrame{n: n, idx: 0}
		if n.leaf {
			return
		}
		n = n.children[0]
	}
}

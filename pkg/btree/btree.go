// Package btree implements an ordered, in-memory B-Tree over opaque values
// under a user-supplied comparator.
//
// The tree is not safe for concurrent mutation; concurrent readers are only
// admissible while no mutation is in flight (see pkg/btree's package docs
// for the concurrency stance). Any mutation invalidates every Iterator
// minted from the Tree; using one afterwards returns status.ErrStaleIterator
// rather than corrupting memory, since Go has no manual-memory footgun for
// stale iterators to exploit the way the original C library did.
package btree

import "github.com/ssargent/btreering/pkg/status"

// CompareFunc is a total order over values. The first argument is always an
// element already in the tree; the second is the caller-supplied key. Go
// idiom replaces the original C API's explicit cmp_data context parameter
// with a closure: callers needing per-call context close over it when
// building the CompareFunc.
type CompareFunc func(a, b any) int

const (
	// DefaultMin is the default minimum branching factor, chosen so a node
	// occupies roughly one 4 KiB page for pointer-sized keys on 64-bit.
	DefaultMin = 85

	// DefaultMaxHeight bounds the number of levels a Tree may grow to, and
	// in turn the fixed Iterator array size.
	DefaultMaxHeight = 6

	// MaxHeightCap is the hard ceiling on MaxHeight; Iterator embeds a
	// [MaxHeightCap]iterFrame array so iterators stay plain stack values
	// regardless of a particular Tree's configured MaxHeight.
	MaxHeightCap = 32
)

// Tree is an ordered collection of opaque values.
type Tree struct {
	cmp       CompareFunc
	root      *node
	size      int
	height    int
	min       int
	maxHeight int
	epoch     uint64
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithMin overrides the minimum branching factor. Values below 2 are
// ignored.
func WithMin(min int) Option {
	return func(t *Tree) {
		if min >= 2 {
			t.min = min
		}
	}
}

// WithMaxHeight overrides the maximum tree height. Values below 1 or above
// MaxHeightCap are ignored.
func WithMaxHeight(h int) Option {
	return func(t *Tree) {
		if h >= 1 && h <= MaxHeightCap {
			t.maxHeight = h
		}
	}
}

// New creates an empty Tree ordered by cmp.
func New(cmp CompareFunc, opts ...Option) *Tree {
	t := &Tree{
		cmp:       cmp,
		min:       DefaultMin,
		maxHeight: DefaultMaxHeight,
		height:    1,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.root = getNode()
	t.root.leaf = true
	return t
}

// Size returns the exact number of live values.
func (t *Tree) Size() int { return t.size }

// Height returns the current number of levels in the tree, from the root
// (level 1) to the leaves.
func (t *Tree) Height() int { return t.height }

func (t *Tree) maxKeys() int { return 2*t.min - 1 }

// searchNode returns the lower-bound index of key within n's keys under the
// tree's own comparator, and whether that index is an exact match.
func (t *Tree) searchNode(n *node, key any) (int, bool) {
	i := searchLowerBound(n, key, t.cmp)
	return i, i < len(n.keys) && t.cmp(n.keys[i], key) == 0
}

func searchLowerBound(n *node, key any, cmp CompareFunc) int {
	lo, hi := 0, len(n.keys)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(n.keys[mid], key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Insert places v in sorted order. It returns status.ErrExists if an equal
// value is already present, or status.ErrMaxHeight if completing the
// insertion would grow the tree past its configured MaxHeight.
func (t *Tree) Insert(v any) error {
	if len(t.root.keys) == t.maxKeys() {
		if t.height+1 > t.maxHeight {
			return status.ErrMaxHeight
		}
		oldRoot := t.root
		newRoot := getNode()
		newRoot.children = append(newRoot.children, oldRoot)
		t.splitChild(newRoot, 0)
		t.root = newRoot
		t.height++
	}

	if !t.insertNonFull(t.root, v) {
		return status.ErrExists
	}
	t.size++
	t.epoch++
	return nil
}

// splitChild splits the full child at parent.children[i], promoting its
// median key into parent at index i.
func (t *Tree) splitChild(parent *node, i int) {
	// A split can happen on an Insert that then fails with ErrExists, so it
	// invalidates outstanding iterators on its own.
	t.epoch++

	full := parent.children[i]
	mid := t.min - 1
	median := full.keys[mid]

	sibling := getNode()
	sibling.leaf = full.leaf
	sibling.keys = append(sibling.keys, full.keys[mid+1:]...)
	full.keys = full.keys[:mid]

	if !full.leaf {
		sibling.children = append(sibling.children, full.children[mid+1:]...)
		full.children = full.children[:mid+1]
	}

	parent.keys = insertAt(parent.keys, i, median)
	parent.children = insertAt(parent.children, i+1, sibling)
}

// insertNonFull inserts v into the subtree rooted at n, which must not
// itself be full. It returns false if an equal key is already present; the
// set of values is then unchanged, though full nodes met on the way down may
// already have been split.
func (t *Tree) insertNonFull(n *node, v any) bool {
	i, found := t.searchNode(n, v)
	if found {
		return false
	}

	if n.leaf {
		n.keys = insertAt(n.keys, i, v)
		return true
	}

	if len(n.children[i].keys) == t.maxKeys() {
		t.splitChild(n, i)
		switch c := t.cmp(n.keys[i], v); {
		case c == 0:
			return false
		case c < 0:
			i++
		}
	}
	return t.insertNonFull(n.children[i], v)
}

// Remove removes the value equal to key under the tree's comparator. On
// success it returns the removed value (which may not be == key, only
// comparator-equal) and an iterator at the element that immediately
// followed it. If no equal key exists, it returns status.ErrNotFound.
func (t *Tree) Remove(key any) (any, Iterator, error) {
	if t.size == 0 {
		return nil, Iterator{}, status.ErrNotFound
	}

	removed, ok := t.remove(t.root, key)

	// Rebalancing on the way down can empty the root even when key turns
	// out to be absent.
	if !t.root.leaf && len(t.root.keys) == 0 {
		oldRoot := t.root
		t.root = t.root.children[0]
		putNode(oldRoot)
		t.height--
	}

	if !ok {
		return nil, Iterator{}, status.ErrNotFound
	}

	t.size--
	t.epoch++

	next, _ := t.LowerBound(nil, key)
	return removed, next, nil
}

func (t *Tree) remove(n *node, key any) (any, bool) {
	i, found := t.searchNode(n, key)

	if found {
		if n.leaf {
			v, rest := removeAt(n.keys, i)
			n.keys = rest
			return v, true
		}
		return t.removeFromInternal(n, i)
	}

	if n.leaf {
		return nil, false
	}

	if len(n.children[i].keys) == t.min-1 {
		i = t.fixChild(n, i)
	}
	return t.remove(n.children[i], key)
}

// removeFromInternal removes the key at n.keys[i] (n is internal). If the
// right child holds at least min keys, the key is replaced by its in-order
// successor -- the leftmost key of the right subtree -- which is deleted
// from the leaf it came from. Otherwise the key is first moved down into the
// right child, by rotating a key over from the left child when that child
// can spare one, or else by merging the two children around it, and is
// removed from there.
func (t *Tree) removeFromInternal(n *node, i int) (any, bool) {
	key := n.keys[i]
	right := n.children[i+1]

	if len(right.keys) >= t.min {
		n.keys[i] = t.removeLeftmost(right)
		return key, true
	}

	if len(n.children[i].keys) >= t.min {
		t.borrowFromLeft(n, i+1)
		return t.remove(right, key)
	}

	t.mergeChildren(n, i)
	return t.remove(n.children[i], key)
}

// removeLeftmost removes and returns the leftmost key in the subtree rooted
// at n, preemptively fixing any child it descends into that sits at the
// minimum key count.
func (t *Tree) removeLeftmost(n *node) any {
	for !n.leaf {
		if len(n.children[0].keys) == t.min-1 {
			t.fixChild(n, 0)
		}
		n = n.children[0]
	}
	v, rest := removeAt(n.keys, 0)
	n.keys = rest
	return v
}

// fixChild repairs n.children[i], which holds exactly min-1 keys, by
// borrowing from a sibling or merging with one, in the spec's preference
// order: borrow left, then borrow right, then merge. It returns the index
// of the (possibly merged) child to descend into next.
func (t *Tree) fixChild(n *node, i int) int {
	// The repair happens before the descent knows whether the key it is
	// looking for exists, so it invalidates outstanding iterators itself.
	t.epoch++

	if i > 0 && len(n.children[i-1].keys) >= t.min {
		t.borrowFromLeft(n, i)
		return i
	}
	if i < len(n.children)-1 && len(n.children[i+1].keys) >= t.min {
		t.borrowFromRight(n, i)
		return i
	}
	if i < len(n.children)-1 {
		t.mergeChildren(n, i)
		return i
	}
	t.mergeChildren(n, i-1)
	return i - 1
}

func (t *Tree) borrowFromLeft(n *node, i int) {
	left := n.children[i-1]
	child := n.children[i]

	lastKey, restKeys := removeAt(left.keys, len(left.keys)-1)
	left.keys = restKeys

	child.keys = insertAt(child.keys, 0, n.keys[i-1])
	n.keys[i-1] = lastKey

	if !child.leaf {
		lastChild, restChildren := removeAt(left.children, len(left.children)-1)
		left.children = restChildren
		child.children = insertAt(child.children, 0, lastChild)
	}
}

func (t *Tree) borrowFromRight(n *node, i int) {
	right := n.children[i+1]
	child := n.children[i]

	firstKey, restKeys := removeAt(right.keys, 0)
	right.keys = restKeys

	child.keys = append(child.keys, n.keys[i])
	n.keys[i] = firstKey

	if !child.leaf {
		firstChild, restChildren := removeAt(right.children, 0)
		right.children = restChildren
		child.children = append(child.children, firstChild)
	}
}

// mergeChildren merges n.children[i] and n.children[i+1], absorbing the
// separating key n.keys[i], into n.children[i].
func (t *Tree) mergeChildren(n *node, i int) {
	left := n.children[i]
	right := n.children[i+1]

	left.keys = append(left.keys, n.keys[i])
	left.keys = append(left.keys, right.keys...)
	if !left.leaf {
		left.children = append(left.children, right.children...)
	}

	_, restKeys := removeAt(n.keys, i)
	n.keys = restKeys
	_, restChildren := removeAt(n.children, i+1)
	n.children = restChildren

	putNode(right)
}

// Find looks up key under the tree's comparator.
func (t *Tree) Find(key any) (Iterator, error) {
	if t.size == 0 {
		return Iterator{}, status.ErrNotFound
	}

	var it Iterator
	n := t.root
	level := 0
	for {
		i, found := t.searchNode(n, key)
		it.frames[level] = iterFrame{n: n, idx: i}
		if found {
			it.level = level
			it.tree = t
			it.epoch = t.epoch
			return it, nil
		}
		if n.leaf {
			return Iterator{}, status.ErrNotFound
		}
		n = n.children[i]
		level++
	}
}

// LowerBound returns the least element v such that cmp(v, key) >= 0. A nil
// cmp defaults to the tree's own comparator. cmp must be consistent with the
// tree's ordering (it ranks any two tree elements the same way the tree's
// comparator does); it may additionally report equality
// for a whole range of elements, in which case the least such element is
// returned. If key exceeds every element, the end iterator is returned with
// a nil error.
func (t *Tree) LowerBound(cmp CompareFunc, key any) (Iterator, error) {
	if cmp == nil {
		cmp = t.cmp
	}
	if t.size == 0 {
		return Iterator{}, nil
	}

	var it Iterator
	n := t.root
	level := 0
	bestLevel := -1

	for {
		i := searchLowerBound(n, key, cmp)
		it.frames[level] = iterFrame{n: n, idx: i}
		if i < len(n.keys) {
			bestLevel = level
		}
		if n.leaf {
			break
		}
		n = n.children[i]
		level++
	}

	if bestLevel == -1 {
		return Iterator{}, nil
	}

	it.level = bestLevel
	it.tree = t
	it.epoch = t.epoch
	return it, nil
}

// Begin returns an iterator at the least element, or the end iterator if
// the tree is empty.
func (t *Tree) Begin() Iterator {
	if t.size == 0 {
		return Iterator{}
	}

	var it Iterator
	n := t.root
	level := 0
	for {
		it.frames[level] = iterFrame{n: n, idx: 0}
		if n.leaf {
			break
		}
		n = n.children[0]
		level++
	}
	it.level = level
	it.tree = t
	it.epoch = t.epoch
	return it
}

// End returns the canonical end iterator.
func (t *Tree) End() Iterator { return Iterator{} }

// Get returns the value at it's current position. It is undefined on an end
// iterator.
func (t *Tree) Get(it Iterator) any {
	f := it.frames[it.level]
	return f.n.keys[f.idx]
}

// Clear removes every value from the tree, calling destroy (if non-nil)
// exactly once per live value, and returns all node storage to the pool.
// Safe on an already-empty tree.
func (t *Tree) Clear(destroy func(any)) {
	if t.root != nil {
		clearNode(t.root, destroy)
	}
	t.root = getNode()
	t.root.leaf = true
	t.size = 0
	t.height = 1
	t.epoch++
}

// Close is an alias for Clear kept for symmetry with the original C
// library's btree_free.
func (t *Tree) Close(destroy func(any)) { t.Clear(destroy) }

func clearNode(n *node, destroy func(any)) {
	if !n.leaf {
		for _, c := range n.children {
			clearNode(c, destroy)
		}
	}
	if destroy != nil {
		for _, k := range n.keys {
			destroy(k)
		}
	}
	putNode(n)
}

package btree

import "sync"

// node is a B-Tree node. leaf nodes hold no children; internal nodes hold
// exactly len(keys)+1 children once they hold any keys at all.
type node struct {
	leaf     bool
	keys     []any
	children []*node
}

// nodePool recycles *node values across splits, merges and tree teardown,
// the same collaborator role jba-btree's copyOnWriteContext gives its
// sync.Pool-backed newNode/freeNode pair.
var nodePool = sync.Pool{New: func() any { return new(node) }}

func getNode() *node {
	return nodePool.Get().(*node)
}

func putNode(n *node) {
	n.keys = n.keys[:0]
	n.children = n.children[:0]
	n.leaf = false
	nodePool.Put(n)
}

// insertAt inserts v at index i, shifting subsequent elements forward.
func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// removeAt removes and returns the element at index i, shifting subsequent
// elements back.
func removeAt[T any](s []T, i int) (T, []T) {
	v := s[i]
	copy(s[i:], s[i+1:])
	var zero T
	s[len(s)-1] = zero
	return v, s[:len(s)-1]
}

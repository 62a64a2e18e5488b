// Package status collects the sentinel errors shared by pkg/btree and
// pkg/codec. Callers compare against these with errors.Is rather than
// switching on an enum, the idiomatic Go stand-in for the original C
// library's Status return codes. pkg/ring reports failure by return value
// (0) rather than error, since it must never allocate or format an error
// on its hot path; these sentinels are not used there.
package status

import "errors"

var (
	// ErrNotFound is returned when a lookup or removal key has no matching
	// element.
	ErrNotFound = errors.New("status: not found")

	// ErrExists is returned by Insert when an equal key is already present.
	// The tree is left unchanged.
	ErrExists = errors.New("status: already exists")

	// ErrNoMem is returned when an allocator reports exhaustion mid-operation.
	// The tree or ring is left unchanged.
	ErrNoMem = errors.New("status: allocation failed")

	// ErrMaxHeight is returned by Insert when completing it would require
	// growing the tree past its configured MaxHeight.
	ErrMaxHeight = errors.New("status: max height exceeded")

	// ErrStaleIterator is returned when an Iterator is used after the Tree
	// that minted it has been mutated.
	ErrStaleIterator = errors.New("status: stale iterator")

	// ErrCorrupt is returned when a framed codec message fails its checksum.
	ErrCorrupt = errors.New("status: corrupt data")

	// ErrIncomplete is returned by codec.Decode when the buffered bytes
	// don't yet hold a complete frame.
	ErrIncomplete = errors.New("status: incomplete data")
)

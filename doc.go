// Package vec provides a contiguous growable sequence container with
// explicit control over element lifetime.
//
// A Vector keeps its live elements in the first Len slots of one
// storage block and grows by doubling, so appends are amortized O(1)
// and element addresses stay stable between growths. Element types
// that own resources or can fail while being duplicated or moved
// plug in through Funcs; operations then report exactly how far they
// got and what state the vector was left in. Reallocating operations
// either fully succeed or leave the vector untouched. In-place
// shifting operations (Insert and Remove without growth) are weaker:
// on failure the vector stays valid and correctly sized, but element
// order may be partially shifted.
//
// Vectors are not safe for concurrent use.
package vec

// Package slots provides an index-stable array with soft delete and compaction.
//
// Erasing a slot marks it dead without moving any other element, so indices
// handed out by PushBack stay valid until Compact is called. Compact removes
// the dead slots and returns the old→new index map.
package slots

import (
	"errors"
	"fmt"
	"iter"
)

// Removed marks a dead slot in a compaction map.
const Removed = -1

// Slot access errors.
var (
	ErrOutOfRange     = errors.New("index out of range")
	ErrUseAfterDelete = errors.New("use of deleted slot")
	ErrAlreadyDeleted = errors.New("slot already deleted")
	ErrMapMismatch    = errors.New("compaction map does not match array size")
)

// Array is a growable sequence of T whose elements can be soft deleted.
// The zero value is an empty array ready to use.
type Array[T any] struct {
	data    []T
	deleted []bool
	live    int
}

// New returns an empty array with room for capacity elements.
func New[T any](capacity int) *Array[T] {
	return &Array[T]{
		data:    make([]T, 0, capacity),
		deleted: make([]bool, 0, capacity),
	}
}

// Len returns the number of slots, dead ones included.
func (a *Array[T]) Len() int {
	return len(a.data)
}

// Live returns the number of slots that are not deleted.
func (a *Array[T]) Live() int {
	return a.live
}

// PushBack appends v as a live slot and returns its index.
func (a *Array[T]) PushBack(v T) int {
	a.data = append(a.data, v)
	a.deleted = append(a.deleted, false)
	a.live++
	return len(a.data) - 1
}

// check validates that i addresses a live slot.
func (a *Array[T]) check(i int) error {
	if i < 0 || i >= len(a.data) {
		return fmt.Errorf("%w: %d (size %d)", ErrOutOfRange, i, len(a.data))
	}
	if a.deleted[i] {
		return fmt.Errorf("%w: %d", ErrUseAfterDelete, i)
	}
	return nil
}

// At returns the value stored at index i.
func (a *Array[T]) At(i int) (T, error) {
	if err := a.check(i); err != nil {
		var zero T
		return zero, err
	}
	return a.data[i], nil
}

// Ref returns a pointer to the value at index i. The pointer is invalidated
// by any operation that grows, inserts into or compacts the array.
func (a *Array[T]) Ref(i int) (*T, error) {
	if err := a.check(i); err != nil {
		return nil, err
	}
	return &a.data[i], nil
}

// Set overwrites the live slot at index i.
func (a *Array[T]) Set(i int, v T) error {
	if err := a.check(i); err != nil {
		return err
	}
	a.data[i] = v
	return nil
}

// Erase marks slot i as deleted. No other index is affected.
func (a *Array[T]) Erase(i int) error {
	if i < 0 || i >= len(a.data) {
		return fmt.Errorf("%w: %d (size %d)", ErrOutOfRange, i, len(a.data))
	}
	if a.deleted[i] {
		return fmt.Errorf("%w: %d", ErrAlreadyDeleted, i)
	}
	var zero T
	a.data[i] = zero
	a.deleted[i] = true
	a.live--
	return nil
}

// IsDeleted reports whether slot i exists and is marked deleted.
func (a *Array[T]) IsDeleted(i int) bool {
	return i >= 0 && i < len(a.data) && a.deleted[i]
}

// IsLive reports whether slot i exists and is not deleted.
func (a *Array[T]) IsLive(i int) bool {
	return i >= 0 && i < len(a.data) && !a.deleted[i]
}

// Insert places v at index i, shifting the slots at i and after by one.
// i == Len() appends. Intended for short sequences such as polygon corner
// lists; entity id spaces only ever append.
func (a *Array[T]) Insert(i int, v T) error {
	if i < 0 || i > len(a.data) {
		return fmt.Errorf("%w: insert at %d (size %d)", ErrOutOfRange, i, len(a.data))
	}
	var zero T
	a.data = append(a.data, zero)
	copy(a.data[i+1:], a.data[i:])
	a.data[i] = v

	a.deleted = append(a.deleted, false)
	copy(a.deleted[i+1:], a.deleted[i:])
	a.deleted[i] = false

	a.live++
	return nil
}

// Resize grows the array to n slots, filling new ones with fill, or
// truncates it to n slots.
func (a *Array[T]) Resize(n int, fill T) {
	if n < 0 {
		n = 0
	}
	if n <= len(a.data) {
		for i := n; i < len(a.data); i++ {
			if !a.deleted[i] {
				a.live--
			}
		}
		clear(a.data[n:])
		a.data = a.data[:n]
		a.deleted = a.deleted[:n]
		return
	}
	for len(a.data) < n {
		a.data = append(a.data, fill)
		a.deleted = append(a.deleted, false)
		a.live++
	}
}

// Compact removes every deleted slot, moving survivors down while keeping
// their relative order. The returned map has one entry per slot before the
// call: the new index of the slot, or Removed.
func (a *Array[T]) Compact() []int {
	m := make([]int, len(a.data))
	w := 0
	for i := range a.data {
		if a.deleted[i] {
			m[i] = Removed
			continue
		}
		if w != i {
			a.data[w] = a.data[i]
		}
		m[i] = w
		w++
	}
	a.truncate(w)
	return m
}

// Permute applies a compaction map produced by another array of the same
// length. The element at i moves to m[i]; slots mapped to Removed are dropped.
// Survivor order must be preserved by m, as Compact guarantees.
func (a *Array[T]) Permute(m []int) error {
	if len(m) != len(a.data) {
		return fmt.Errorf("%w: map has %d entries, array has %d", ErrMapMismatch, len(m), len(a.data))
	}
	w := 0
	for i, dst := range m {
		if dst == Removed {
			continue
		}
		if dst != w {
			return fmt.Errorf("%w: index %d maps to %d, expected %d", ErrMapMismatch, i, dst, w)
		}
		a.data[w] = a.data[i]
		a.deleted[w] = a.deleted[i]
		w++
	}
	clear(a.data[w:])
	a.data = a.data[:w]
	a.deleted = a.deleted[:w]
	a.live = 0
	for _, d := range a.deleted {
		if !d {
			a.live++
		}
	}
	return nil
}

func (a *Array[T]) truncate(n int) {
	clear(a.data[n:])
	a.data = a.data[:n]
	a.deleted = a.deleted[:n]
	clear(a.deleted)
	a.live = n
}

// Clear drops every slot.
func (a *Array[T]) Clear() {
	a.truncate(0)
}

// All iterates live slots in index order.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range a.data {
			if a.deleted[i] {
				continue
			}
			if !yield(i, a.data[i]) {
				return
			}
		}
	}
}

// Values iterates the values of live slots in index order.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range a.data {
			if a.deleted[i] {
				continue
			}
			if !yield(a.data[i]) {
				return
			}
		}
	}
}

// Indices iterates the indices of live slots in increasing order.
func (a *Array[T]) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range a.data {
			if a.deleted[i] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

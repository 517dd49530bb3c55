package mesh

import (
	"fmt"
	"iter"

	"github.com/Faultbox/meshstore/pkg/slots"
)

// idSpace is the owner of an attribute: the handler whose ids index it.
type idSpace interface {
	NextID() int
	IsDeleted(id int) bool
}

// Attribute is an optional per-entity value stored in parallel with its
// owning handler. While enabled it always has one slot per owner id, deleted
// where the owner is deleted; the owner keeps it in sync on add, delete,
// clear and compaction. A nil or disabled Attribute reports ErrNotEnabled.
type Attribute[T any] struct {
	name    string
	owner   idSpace
	init    func(id int) T
	values  slots.Array[T]
	enabled bool
}

func newAttribute[T any](name string, owner idSpace, init func(id int) T) *Attribute[T] {
	return &Attribute[T]{name: name, owner: owner, init: init}
}

// Name returns the attribute name, e.g. "vertex normals".
func (a *Attribute[T]) Name() string {
	if a == nil {
		return ""
	}
	return a.name
}

// Enabled reports whether the attribute is stored.
func (a *Attribute[T]) Enabled() bool {
	return a != nil && a.enabled
}

// Enable allocates one default value per owner id. Enabling an enabled
// attribute keeps its values. A nil attribute, one the mesh kind lacks, stays
// disabled; use Mesh.Enable to get ErrUnsupported instead.
func (a *Attribute[T]) Enable() {
	if a == nil || a.enabled {
		return
	}
	a.enabled = true
	a.values.Clear()
	a.grow(a.owner.NextID())
	for id := 0; id < a.values.Len(); id++ {
		if a.owner.IsDeleted(id) {
			_ = a.values.Erase(id)
		}
	}
}

// Disable drops every value.
func (a *Attribute[T]) Disable() {
	if a == nil {
		return
	}
	a.enabled = false
	a.values.Clear()
}

// Get returns the value for owner id.
func (a *Attribute[T]) Get(id int) (T, error) {
	if !a.Enabled() {
		var zero T
		return zero, a.notEnabled()
	}
	v, err := a.values.At(id)
	if err != nil {
		return v, fmt.Errorf("%s: %w", a.name, err)
	}
	return v, nil
}

// Set stores the value for owner id.
func (a *Attribute[T]) Set(id int, v T) error {
	if !a.Enabled() {
		return a.notEnabled()
	}
	if err := a.values.Set(id, v); err != nil {
		return fmt.Errorf("%s: %w", a.name, err)
	}
	return nil
}

// All iterates the values of live owners in id order. It yields nothing
// while disabled.
func (a *Attribute[T]) All() iter.Seq2[int, T] {
	if !a.Enabled() {
		return func(func(int, T) bool) {}
	}
	return a.values.All()
}

// Len returns the number of stored slots, deleted included.
func (a *Attribute[T]) Len() int {
	if !a.Enabled() {
		return 0
	}
	return a.values.Len()
}

func (a *Attribute[T]) ref(id int) (*T, error) {
	if !a.Enabled() {
		return nil, a.notEnabled()
	}
	v, err := a.values.Ref(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	return v, nil
}

func (a *Attribute[T]) notEnabled() error {
	if a == nil {
		return fmt.Errorf("%w: unsupported attribute", ErrNotEnabled)
	}
	return fmt.Errorf("%w: %s", ErrNotEnabled, a.name)
}

// check reports a mismatch between the attribute and its owner.
func (a *Attribute[T]) check() error {
	if !a.Enabled() {
		return nil
	}
	if n, want := a.values.Len(), a.owner.NextID(); n != want {
		return fmt.Errorf("%s: %d slots for %d ids", a.name, n, want)
	}
	for id := 0; id < a.values.Len(); id++ {
		if a.values.IsDeleted(id) != a.owner.IsDeleted(id) {
			return fmt.Errorf("%s: slot %d deletion differs from owner", a.name, id)
		}
	}
	return nil
}

func (a *Attribute[T]) grow(next int) {
	if !a.enabled {
		return
	}
	for a.values.Len() < next {
		a.values.PushBack(a.init(a.values.Len()))
	}
}

func (a *Attribute[T]) erase(id int) {
	if !a.enabled {
		return
	}
	_ = a.values.Erase(id)
}

func (a *Attribute[T]) compacted(m []int) error {
	if !a.enabled {
		return nil
	}
	return a.values.Permute(m)
}

func (a *Attribute[T]) cleared() {
	a.values.Clear()
}

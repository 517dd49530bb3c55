package mesh

import (
	"fmt"
	"iter"

	"github.com/Faultbox/meshstore/pkg/slots"
)

// entityPtr is satisfied by pointers to the entity types of this package.
type entityPtr[T any] interface {
	*T
	ID() int
	setID(id int)
}

// follower is a container kept in lock-step with a handler's id space.
type follower interface {
	check() error
	grow(next int)
	erase(id int)
	compacted(m []int) error
	cleared()
}

// Handler stores the entities of one kind. Every live entity's ID equals its
// index; the handler writes ids on add and rewrites them on compaction.
type Handler[T any, P entityPtr[T]] struct {
	kind      string
	store     slots.Array[T]
	followers []follower
}

func newHandler[T any, P entityPtr[T]](kind string) *Handler[T, P] {
	return &Handler[T, P]{kind: kind}
}

// Kind returns the entity kind name used in error messages.
func (h *Handler[T, P]) Kind() string { return h.kind }

// NextID returns the id the next added entity will get. It is an upper bound
// for iteration, not the live count.
func (h *Handler[T, P]) NextID() int { return h.store.Len() }

// Number returns the number of live entities.
func (h *Handler[T, P]) Number() int { return h.store.Live() }

// Add stores a copy of e, writes its id and returns it.
func (h *Handler[T, P]) Add(e T) int {
	id := h.push(e)
	h.notifyGrow()
	return id
}

// Allocate appends n copies of fill with sequential ids and returns the first
// of them.
func (h *Handler[T, P]) Allocate(n int, fill T) (int, error) {
	if n < 0 {
		return NullID, fmt.Errorf("%s: %w: %d", h.kind, ErrNegativeCount, n)
	}
	first := h.store.Len()
	for i := 0; i < n; i++ {
		h.push(fill)
	}
	h.notifyGrow()
	return first, nil
}

func (h *Handler[T, P]) push(e T) int {
	id := h.store.PushBack(e)
	ref, _ := h.store.Ref(id)
	P(ref).setID(id)
	return id
}

func (h *Handler[T, P]) notifyGrow() {
	for _, f := range h.followers {
		f.grow(h.store.Len())
	}
}

// Get returns a copy of the entity with the given id.
func (h *Handler[T, P]) Get(id int) (T, error) {
	e, err := h.store.At(id)
	if err != nil {
		return e, fmt.Errorf("%s: %w", h.kind, err)
	}
	return e, nil
}

// ref returns the stored entity for in-place updates.
func (h *Handler[T, P]) ref(id int) (P, error) {
	ref, err := h.store.Ref(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.kind, err)
	}
	return P(ref), nil
}

// Remove soft deletes the entity. Entities referencing it are not touched.
func (h *Handler[T, P]) Remove(id int) error {
	if err := h.store.Erase(id); err != nil {
		return fmt.Errorf("%s: %w", h.kind, err)
	}
	for _, f := range h.followers {
		f.erase(id)
	}
	return nil
}

// RemoveEntity removes the entity identified by e's stored id.
func (h *Handler[T, P]) RemoveEntity(e T) error {
	return h.Remove(P(&e).ID())
}

// IsDeleted reports whether id addresses a deleted entity.
func (h *Handler[T, P]) IsDeleted(id int) bool { return h.store.IsDeleted(id) }

// Exists reports whether id addresses a live entity.
func (h *Handler[T, P]) Exists(id int) bool { return h.store.IsLive(id) }

// All iterates live entities in id order.
func (h *Handler[T, P]) All() iter.Seq2[int, T] { return h.store.All() }

// IDs iterates the ids of live entities in increasing order.
func (h *Handler[T, P]) IDs() iter.Seq[int] { return h.store.Indices() }

// Clear drops every entity; the next id restarts at 0.
func (h *Handler[T, P]) Clear() {
	h.store.Clear()
	for _, f := range h.followers {
		f.cleared()
	}
}

// compact removes deleted entities, renumbers the survivors and compacts
// every registered follower with the same map, which is returned. Followers
// are checked first so a mismatch leaves everything untouched. References
// held by other handlers are the caller's job: see Mesh.CompactVertices.
func (h *Handler[T, P]) compact() ([]int, error) {
	for _, f := range h.followers {
		if err := f.check(); err != nil {
			return nil, fmt.Errorf("%s: %w", h.kind, err)
		}
	}
	m := h.store.Compact()
	for i := 0; i < h.store.Len(); i++ {
		ref, _ := h.store.Ref(i)
		P(ref).setID(i)
	}
	for _, f := range h.followers {
		if err := f.compacted(m); err != nil {
			return m, fmt.Errorf("%s: %w", h.kind, err)
		}
	}
	return m, nil
}

// CheckIDs verifies that every live entity stores its own index as id.
func (h *Handler[T, P]) CheckIDs() error {
	for i, e := range h.store.All() {
		if got := P(&e).ID(); got != i {
			return fmt.Errorf("%s %d stores id %d", h.kind, i, got)
		}
	}
	return nil
}

func (h *Handler[T, P]) register(f follower) {
	h.followers = append(h.followers, f)
}

package slots

import (
	"errors"
	"slices"
	"testing"
)

func fill(values ...string) *Array[string] {
	a := New[string](len(values))
	for _, v := range values {
		a.PushBack(v)
	}
	return a
}

func TestPushBackAssignsSequentialIndices(t *testing.T) {
	var a Array[int]
	for i := 0; i < 5; i++ {
		if got := a.PushBack(i * 10); got != i {
			t.Errorf("expected index %d, got %d", i, got)
		}
	}
	if a.Len() != 5 || a.Live() != 5 {
		t.Errorf("expected len 5 live 5, got len %d live %d", a.Len(), a.Live())
	}
}

func TestAccessErrors(t *testing.T) {
	a := fill("a", "b", "c")
	if err := a.Erase(1); err != nil {
		t.Fatalf("erase: %v", err)
	}

	tests := []struct {
		name    string
		index   int
		wantErr error
	}{
		{"live", 0, nil},
		{"deleted", 1, ErrUseAfterDelete},
		{"past end", 3, ErrOutOfRange},
		{"negative", -1, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.At(tt.index)
			if !errors.Is(err, tt.wantErr) && !(tt.wantErr == nil && err == nil) {
				t.Errorf("At(%d): expected %v, got %v", tt.index, tt.wantErr, err)
			}
			err = a.Set(tt.index, "z")
			if !errors.Is(err, tt.wantErr) && !(tt.wantErr == nil && err == nil) {
				t.Errorf("Set(%d): expected %v, got %v", tt.index, tt.wantErr, err)
			}
		})
	}
}

func TestEraseTwice(t *testing.T) {
	a := fill("a", "b")
	if err := a.Erase(0); err != nil {
		t.Fatalf("first erase: %v", err)
	}
	if err := a.Erase(0); !errors.Is(err, ErrAlreadyDeleted) {
		t.Errorf("expected ErrAlreadyDeleted, got %v", err)
	}
	if err := a.Erase(7); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if a.Live() != 1 {
		t.Errorf("expected 1 live slot, got %d", a.Live())
	}
}

func TestIndexStabilityAcrossErase(t *testing.T) {
	a := New[int](0)
	for i := 0; i < 20; i++ {
		a.PushBack(i)
	}
	for i := 0; i < 20; i += 3 {
		if err := a.Erase(i); err != nil {
			t.Fatalf("erase %d: %v", i, err)
		}
		a.PushBack(100 + i)
	}
	for i := 0; i < 20; i++ {
		v, err := a.At(i)
		if i%3 == 0 {
			if !errors.Is(err, ErrUseAfterDelete) {
				t.Errorf("index %d: expected deleted, got %v", i, err)
			}
			continue
		}
		if err != nil || v != i {
			t.Errorf("index %d: expected %d, got %d (%v)", i, i, v, err)
		}
	}
}

func TestCompactScenario(t *testing.T) {
	a := fill("a", "b", "c", "d", "e")
	_ = a.Erase(1)
	_ = a.Erase(3)

	m := a.Compact()

	wantMap := []int{0, Removed, 1, Removed, 2}
	if !slices.Equal(m, wantMap) {
		t.Errorf("expected map %v, got %v", wantMap, m)
	}
	got := slices.Collect(a.Values())
	if !slices.Equal(got, []string{"a", "c", "e"}) {
		t.Errorf("expected [a c e], got %v", got)
	}
	if a.Len() != 3 || a.Live() != 3 {
		t.Errorf("expected len 3 live 3, got len %d live %d", a.Len(), a.Live())
	}
}

func TestCompactMapCorrectness(t *testing.T) {
	a := New[int](0)
	for i := 0; i < 50; i++ {
		a.PushBack(i * i)
	}
	before := make([]int, 50)
	for i := range before {
		before[i] = i * i
	}
	dead := map[int]bool{}
	for i := 0; i < 50; i++ {
		if i%4 == 1 || i%7 == 0 {
			_ = a.Erase(i)
			dead[i] = true
		}
	}
	live := a.Live()

	m := a.Compact()

	if a.Len() != live {
		t.Errorf("expected len %d after compaction, got %d", live, a.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if a.IsDeleted(i) {
			t.Errorf("index %d still deleted after compaction", i)
		}
	}
	prev := -1
	for i, dst := range m {
		if dead[i] {
			if dst != Removed {
				t.Errorf("dead index %d: expected Removed, got %d", i, dst)
			}
			continue
		}
		if dst <= prev {
			t.Errorf("order not preserved at %d: %d after %d", i, dst, prev)
		}
		prev = dst
		v, err := a.At(dst)
		if err != nil || v != before[i] {
			t.Errorf("old %d -> new %d: expected %d, got %d (%v)", i, dst, before[i], v, err)
		}
	}
}

func TestCompactIdempotent(t *testing.T) {
	a := fill("a", "b", "c")
	_ = a.Erase(0)
	a.Compact()

	m := a.Compact()
	if !slices.Equal(m, []int{0, 1}) {
		t.Errorf("expected identity map, got %v", m)
	}
	if got := slices.Collect(a.Values()); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("expected [b c], got %v", got)
	}
}

func TestPermuteFollowsOwnerMap(t *testing.T) {
	owner := fill("a", "b", "c", "d")
	attr := New[int](4)
	for i := 0; i < 4; i++ {
		attr.PushBack(i + 1)
	}
	_ = owner.Erase(2)
	_ = attr.Erase(2)

	m := owner.Compact()
	if err := attr.Permute(m); err != nil {
		t.Fatalf("permute: %v", err)
	}
	if got := slices.Collect(attr.Values()); !slices.Equal(got, []int{1, 2, 4}) {
		t.Errorf("expected [1 2 4], got %v", got)
	}
	if attr.Live() != 3 {
		t.Errorf("expected 3 live, got %d", attr.Live())
	}

	if err := attr.Permute([]int{0}); !errors.Is(err, ErrMapMismatch) {
		t.Errorf("expected ErrMapMismatch, got %v", err)
	}
	if err := attr.Permute([]int{1, 0, 2}); !errors.Is(err, ErrMapMismatch) {
		t.Errorf("expected ErrMapMismatch for reordering map, got %v", err)
	}
}

func TestInsertShiftsSequence(t *testing.T) {
	a := fill("a", "c")
	if err := a.Insert(1, "b"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := a.Insert(3, "d"); err != nil {
		t.Fatalf("append insert: %v", err)
	}
	if got := slices.Collect(a.Values()); !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("expected [a b c d], got %v", got)
	}
	if err := a.Insert(9, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestInsertKeepsDeletedFlagsAligned(t *testing.T) {
	a := fill("a", "b", "c")
	_ = a.Erase(1)
	_ = a.Insert(0, "z")
	if !a.IsDeleted(2) || a.IsDeleted(1) {
		t.Errorf("expected deleted flag to move to index 2")
	}
}

func TestResize(t *testing.T) {
	a := fill("a", "b", "c")
	_ = a.Erase(2)
	a.Resize(5, "x")
	if a.Len() != 5 || a.Live() != 4 {
		t.Errorf("expected len 5 live 4, got len %d live %d", a.Len(), a.Live())
	}
	a.Resize(1, "")
	if a.Len() != 1 || a.Live() != 1 {
		t.Errorf("expected len 1 live 1, got len %d live %d", a.Len(), a.Live())
	}
}

func TestIterationSkipsDeleted(t *testing.T) {
	a := fill("a", "b", "c", "d")
	_ = a.Erase(0)
	_ = a.Erase(2)

	var idx []int
	for i, v := range a.All() {
		idx = append(idx, i)
		if v == "" {
			t.Errorf("iteration yielded empty value at %d", i)
		}
	}
	if !slices.Equal(idx, []int{1, 3}) {
		t.Errorf("expected indices [1 3], got %v", idx)
	}
	if got := slices.Collect(a.Indices()); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("expected indices [1 3], got %v", got)
	}
}

func TestClear(t *testing.T) {
	a := fill("a", "b")
	_ = a.Erase(0)
	a.Clear()
	if a.Len() != 0 || a.Live() != 0 {
		t.Errorf("expected empty array, got len %d live %d", a.Len(), a.Live())
	}
	if got := a.PushBack("c"); got != 0 {
		t.Errorf("expected index 0 after clear, got %d", got)
	}
}

package ecs

import "testing"

type tag struct{ name string }

func TestEntityPoolNeverReturnsZero(t *testing.T) {
	p := NewEntityPool()
	id := p.Create()
	if id.IsZero() {
		t.Fatal("first created id must not be zero")
	}
	if !p.Alive(id) {
		t.Fatal("fresh id should be alive")
	}
	if p.Alive(0) {
		t.Fatal("zero id must never be alive")
	}
}

func TestEntityPoolGenerationInvalidatesStaleRefs(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	p.Destroy(a)
	b := p.Create()

	if a.Index() != b.Index() {
		t.Fatalf("expected slot reuse, got %d and %d", a.Index(), b.Index())
	}
	if a == b {
		t.Fatal("reused slot must carry a new generation")
	}
	if p.Alive(a) {
		t.Error("stale id reported alive")
	}
	if !p.Alive(b) {
		t.Error("new id reported dead")
	}
	if p.Live() != 1 {
		t.Errorf("Live() = %d, want 1", p.Live())
	}

	// Destroying a stale id must not free the live slot.
	p.Destroy(a)
	if !p.Alive(b) {
		t.Error("destroying stale id killed the live one")
	}
}

func TestOrderedStoreKeepsInsertionOrder(t *testing.T) {
	s := NewOrderedStore[tag]()
	s.Set(3, &tag{"c"})
	s.Set(1, &tag{"a"})
	s.Set(2, &tag{"b"})
	s.Set(1, &tag{"a2"})

	s.Remove(3)

	got := s.Snapshot()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].name != "a2" || got[1].name != "b" {
		t.Errorf("order = [%s %s], want [a2 b]", got[0].name, got[1].name)
	}

	var ids []EntityID
	s.Each(func(id EntityID, _ *tag) { ids = append(ids, id) })
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("Each ids = %v, want [1 2]", ids)
	}
}

func TestWorldFlushIgnoresDuplicates(t *testing.T) {
	w := NewWorld()
	s := NewOrderedStore[tag]()
	w.Register(s)

	id := w.CreateEntity()
	s.Set(id, &tag{"x"})

	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	if n := w.FlushDestroyQueue(); n != 1 {
		t.Errorf("FlushDestroyQueue = %d, want 1", n)
	}
	if s.Has(id) {
		t.Error("component survived flush")
	}
	if n := w.FlushDestroyQueue(); n != 0 {
		t.Errorf("second flush = %d, want 0", n)
	}
}

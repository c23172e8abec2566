package sim

import "testing"

func TestRequestBuffer_AppendAndItems(t *testing.T) {
	b := NewRequestBuffer(10, 2)
	r1 := &Request{DropoffNode: 1}
	r2 := &Request{DropoffNode: 2}
	b.Append(r1)
	b.Append(r2)

	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	items := b.Items()
	if items[0] != r1 || items[1] != r2 {
		t.Fatal("Items() did not preserve insertion order")
	}
}

func TestRequestBuffer_SpliceAndClear(t *testing.T) {
	b := NewRequestBuffer(10, 1)
	b.Append(&Request{DropoffNode: 0})
	b.Splice([]*Request{{DropoffNode: 1}, {DropoffNode: 2}})
	if b.Len() != 3 {
		t.Fatalf("Len() after Splice = %d, want 3", b.Len())
	}
	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", b.Len())
	}
	b.Append(&Request{DropoffNode: 9})
	if b.Len() != 1 {
		t.Fatal("buffer should remain usable after Clear")
	}
}

func TestNewRequestBuffer_NeverNegativeCapacity(t *testing.T) {
	// should not panic despite a negative timesteps*rate product
	b := NewRequestBuffer(-5, 2)
	b.Append(&Request{})
	if b.Len() != 1 {
		t.Fatal("expected buffer to accept an append after a defensive zero-floor reserve")
	}
}

func TestRequestBuffer_Filter(t *testing.T) {
	b := NewRequestBuffer(4, 1)
	b.Append(&Request{Duration: 0})
	b.Append(&Request{Duration: 5})
	b.Append(&Request{Duration: 0})
	b.Filter(func(r *Request) bool { return r.Duration > 0 })
	if b.Len() != 1 {
		t.Fatalf("Len() after Filter = %d, want 1", b.Len())
	}
	if b.Items()[0].Duration != 5 {
		t.Fatal("Filter kept the wrong request")
	}
}

func TestFilterInPlace_KeepsOnlyMatching(t *testing.T) {
	items := []*Request{
		{Duration: 0},
		{Duration: 5},
		{Duration: 0},
		{Duration: 3},
	}
	kept := FilterInPlace(items, func(r *Request) bool { return r.Duration > 0 })
	if len(kept) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(kept))
	}
	for _, r := range kept {
		if r.Duration == 0 {
			t.Fatal("FilterInPlace retained a request that should have been dropped")
		}
	}
}

func TestFilterInPlace_EmptyInput(t *testing.T) {
	kept := FilterInPlace(nil, func(r *Request) bool { return true })
	if len(kept) != 0 {
		t.Fatalf("expected empty result for nil input, got %d", len(kept))
	}
}

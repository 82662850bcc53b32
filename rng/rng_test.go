package rng

import "testing"

func TestReproducibility(t *testing.T) {
	const n = 1_000_000
	a := New(1)
	b := New(1)
	for i := 0; i < n; i++ {
		av, bv := a.Next(), b.Next()
		if av != bv {
			t.Fatalf("sequence diverged at index %d: %d != %d", i, av, bv)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 8; i++ {
		if a.Next() != b.Next() {
			same = false
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different sequences")
	}
}

func TestNext01Range(t *testing.T) {
	r := New(42)
	for i := 0; i < 10000; i++ {
		v := r.Next01()
		if v < 0 || v >= 1 {
			t.Fatalf("Next01 out of range: %v", v)
		}
	}
}

func TestNextIntBounds(t *testing.T) {
	r := New(7)
	for i := 0; i < 10000; i++ {
		v := r.NextInt(5)
		if v < 0 || v >= 5 {
			t.Fatalf("NextInt(5) out of range: %d", v)
		}
	}
	if r.NextInt(0) != 0 {
		t.Fatal("NextInt(0) should return 0")
	}
}

func TestNextRangeInclusive(t *testing.T) {
	r := New(3)
	for i := 0; i < 10000; i++ {
		v := r.NextRange(2, 4)
		if v < 2 || v > 4 {
			t.Fatalf("NextRange(2,4) out of range: %d", v)
		}
	}
}

func TestChanceBounds(t *testing.T) {
	r := New(9)
	if r.Chance(0) {
		t.Fatal("Chance(0) must never fire")
	}
	if !r.Chance(1) {
		t.Fatal("Chance(1) must always fire")
	}
}

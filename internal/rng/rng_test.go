package rng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("draw %d differs: %d != %d", i, x, y)
		}
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same == 100 {
		t.Error("Different seeds produced identical sequences")
	}
}

func TestIntNBounds(t *testing.T) {
	r := New(7)
	tests := []int{1, 2, 3, 7, 9, 100, 1 << 20}

	for _, n := range tests {
		for i := 0; i < 500; i++ {
			got := r.IntN(n)
			if got < 0 || got >= n {
				t.Fatalf("IntN(%d) = %d, out of range", n, got)
			}
		}
	}
}

func TestIntNPanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IntN(0) should panic")
		}
	}()
	New(1).IntN(0)
}

func TestRangeCoversInterval(t *testing.T) {
	r := New(99)
	seen := make(map[int]bool)

	for i := 0; i < 2000; i++ {
		v := r.Range(6, 15)
		if v < 6 || v >= 15 {
			t.Fatalf("Range(6, 15) = %d, out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 9 {
		t.Errorf("Range(6, 15) produced %d distinct values, want 9", len(seen))
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	r := New(3)
	values := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	r.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	seen := make([]bool, len(values))
	for _, v := range values {
		if seen[v] {
			t.Fatalf("value %d appears twice after shuffle", v)
		}
		seen[v] = true
	}
}

func TestDrawsCounts(t *testing.T) {
	r := New(5)
	r.Uint64()
	r.Bool()
	r.Shuffle(3, func(i, j int) {})

	if r.Draws() < 4 {
		t.Errorf("Draws() = %d, want at least 4", r.Draws())
	}
}

// TestKnownSequence pins the generator output. Stored seeds depend on it.
func TestKnownSequence(t *testing.T) {
	r := New(12345)
	want := []uint64{
		0x0109dc3e042b0ee4,
		0x07a3690625ecc588,
		0x86fd4939978cb676,
		0x311947f24b4ad249,
	}
	for i, w := range want {
		if got := r.Uint64(); got != w {
			t.Errorf("Uint64() #%d = %#x, want %#x", i, got, w)
		}
	}

	if got := New(-1).Uint64(); got != 0xad7563d75715d161 {
		t.Errorf("New(-1).Uint64() = %#x, want 0xad7563d75715d161", got)
	}
}

func TestKnownDerivedValues(t *testing.T) {
	r := New(7)
	wantInts := []int{2, 0, 0, 6, 5, 1, 0, 7}
	for i, w := range wantInts {
		if got := r.IntN(10); got != w {
			t.Errorf("IntN(10) #%d = %d, want %d", i, got, w)
		}
	}

	r = New(7)
	wantBools := []bool{true, false, false, false, false, false}
	for i, w := range wantBools {
		if got := r.Bool(); got != w {
			t.Errorf("Bool() #%d = %v, want %v", i, got, w)
		}
	}

	r = New(7)
	perm := []int{0, 1, 2, 3, 4, 5}
	r.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	wantPerm := []int{3, 5, 2, 4, 0, 1}
	for i := range perm {
		if perm[i] != wantPerm[i] {
			t.Fatalf("Shuffle() = %v, want %v", perm, wantPerm)
		}
	}
	if r.Draws() != 5 {
		t.Errorf("Shuffle of 6 used %d draws, want 5", r.Draws())
	}
}

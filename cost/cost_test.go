package cost

import "testing"

func TestSaturatingAdd(t *testing.T) {
	if got := Inf.Add(FromInt(5)); !got.IsInf() {
		t.Fatalf("Inf.Add(5) = %v, want Inf", got)
	}
	if got := FromInt(3).Add(FromInt(4)); got.Int() != 7 {
		t.Fatalf("3+4 = %v, want 7", got)
	}
}

func TestSaturatingSub(t *testing.T) {
	if got := FromInt(3).Sub(FromInt(10)); !got.Equal(Zero) {
		t.Fatalf("3-10 = %v, want 0", got)
	}
	if got := Inf.Sub(FromInt(10)); !got.IsInf() {
		t.Fatalf("Inf-10 = %v, want Inf", got)
	}
	if got := FromInt(10).Sub(Inf); !got.Equal(Zero) {
		t.Fatalf("10-Inf = %v, want 0", got)
	}
}

func TestOrdering(t *testing.T) {
	if !FromInt(1).Less(FromInt(2)) {
		t.Fatal("1 should be less than 2")
	}
	if FromInt(2).Less(Inf) == false {
		t.Fatal("finite cost should be less than Inf")
	}
	if Inf.Less(Inf) {
		t.Fatal("Inf should not be less than Inf")
	}
}

func TestOrderedPairTieBreak(t *testing.T) {
	a := OrderedPair{Primary: FromInt(5), Secondary: FromInt(10)}
	b := OrderedPair{Primary: FromInt(5), Secondary: FromInt(3)}
	if !b.Less(a) {
		t.Fatal("equal primary should break tie on secondary")
	}
}

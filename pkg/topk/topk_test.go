package topk

import (
	"math/rand"
	"sort"
	"testing"
)

func distances[T any](items []Item[T]) []float64 {
	ds := make([]float64, len(items))
	for i, it := range items {
		ds[i] = it.Distance
	}
	return ds
}

func TestInsertDistinctKeepsSmallestSorted(t *testing.T) {
	for _, n := range []int{0, 1, 5, 9, 10, 11, 50, 500} {
		rng := rand.New(rand.NewSource(int64(n)))
		perm := rng.Perm(n)
		nearest := New[int](DefaultK)
		for _, p := range perm {
			nearest.Insert(p, float64(p))
		}
		got := nearest.Results()
		want := n
		if want > DefaultK {
			want = DefaultK
		}
		if len(got) != want {
			t.Fatalf("n=%d: got %d results, want %d", n, len(got), want)
		}
		ds := distances(got)
		if !sort.Float64sAreSorted(ds) {
			t.Errorf("n=%d: results not sorted: %v", n, ds)
		}
		for i, it := range got {
			if it.Value != i {
				t.Errorf("n=%d: result %d = %d, want %d", n, i, it.Value, i)
			}
		}
	}
}

func TestInsertWorseThanWorstWhenFull(t *testing.T) {
	nearest := New[string](3)
	nearest.Insert("a", 1)
	nearest.Insert("b", 2)
	nearest.Insert("c", 3)
	before := nearest.Results()

	if nearest.Insert("d", 4) {
		t.Error("Insert returned true for an item farther than the worst")
	}
	if nearest.Insert("e", 3) {
		t.Error("Insert returned true for an item tied with the worst")
	}
	after := nearest.Results()
	if len(after) != len(before) {
		t.Fatalf("length changed from %d to %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("item %d changed from %v to %v", i, before[i], after[i])
		}
	}
}

func TestInsertClosestEvictsFarthest(t *testing.T) {
	nearest := New[int](DefaultK)
	for i := 1; i <= DefaultK; i++ {
		nearest.Insert(i, float64(i*10))
	}
	if !nearest.Insert(0, 0.5) {
		t.Fatal("Insert returned false for the closest item")
	}
	got := nearest.Results()
	if len(got) != DefaultK {
		t.Fatalf("got %d results, want %d", len(got), DefaultK)
	}
	if got[0].Value != 0 {
		t.Errorf("first item = %d, want 0", got[0].Value)
	}
	for _, it := range got {
		if it.Value == DefaultK {
			t.Errorf("farthest item %d was not evicted", DefaultK)
		}
	}
	if worst, _ := nearest.Worst(); worst != float64((DefaultK-1)*10) {
		t.Errorf("worst = %v, want %v", worst, (DefaultK-1)*10)
	}
}

func TestInsertTiesKeepArrivalOrder(t *testing.T) {
	nearest := New[string](4)
	nearest.Insert("far", 9)
	nearest.Insert("first", 5)
	nearest.Insert("second", 5)
	nearest.Insert("near", 1)
	nearest.Insert("third", 5)

	var got []string
	for _, it := range nearest.Results() {
		got = append(got, it.Value)
	}
	want := []string{"near", "first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestResultsIsACopy(t *testing.T) {
	nearest := New[int](2)
	nearest.Insert(1, 1)
	res := nearest.Results()
	res[0].Distance = 100
	if got := nearest.Results()[0].Distance; got != 1 {
		t.Errorf("mutating Results changed the list: distance %v", got)
	}
}

func TestNewClampsK(t *testing.T) {
	nearest := New[int](0)
	if nearest.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1", nearest.Cap())
	}
	if _, ok := nearest.Worst(); ok {
		t.Error("Worst() on empty list reported a value")
	}
	nearest.Insert(1, 2)
	nearest.Insert(2, 1)
	if nearest.Len() != 1 || nearest.Results()[0].Value != 2 {
		t.Errorf("unexpected results %v", nearest.Results())
	}
}

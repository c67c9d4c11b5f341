package iteratable

import "testing"

func TestAddDeduplicates(t *testing.T) {
	s := NewSet(0)
	if !s.Add("a") {
		t.Fatal("expected first Add to report true")
	}
	if s.Add("a") {
		t.Fatal("expected duplicate Add to report false")
	}
	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", s.Size())
	}
}

func TestIterateWhileAppending(t *testing.T) {
	s := NewSet(0)
	s.Add(1)
	s.IterateOnce()
	var seen []int
	for s.Next() {
		v := s.Item().(int)
		seen = append(seen, v)
		if v == 1 {
			s.Add(2)
		}
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("seen = %v, want [1 2]", seen)
	}
}

func TestRemove(t *testing.T) {
	s := NewSet(0)
	s.Add("a")
	s.Add("b")
	s.Add("c")
	if !s.Remove("b") {
		t.Fatal("expected Remove to report true for a present element")
	}
	if s.Remove("b") {
		t.Fatal("expected Remove to report false for an absent element")
	}
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}
	var remaining []string
	s.Each(func(item interface{}) { remaining = append(remaining, item.(string)) })
	if len(remaining) != 2 || remaining[0] != "a" || remaining[1] != "c" {
		t.Fatalf("remaining = %v, want [a c]", remaining)
	}
}

func TestSubsetAndUnion(t *testing.T) {
	s := NewSet(0)
	s.Add(1)
	s.Add(2)
	s.Add(3)
	s.Add(4)
	even := s.Subset(func(item interface{}) bool { return item.(int)%2 == 0 })
	if even.Size() != 2 {
		t.Fatalf("even.Size() = %d, want 2", even.Size())
	}
	odd := NewSet(0)
	odd.Add(1)
	odd.Add(3)
	union := odd.Union(even)
	if union.Size() != 4 {
		t.Fatalf("union.Size() = %d, want 4", union.Size())
	}
}

func TestSort(t *testing.T) {
	s := NewSet(0)
	s.Add(3)
	s.Add(1)
	s.Add(2)
	s.Sort(func(a, b interface{}) bool { return a.(int) < b.(int) })
	var got []int
	s.Each(func(item interface{}) { got = append(got, item.(int)) })
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sort() = %v, want %v", got, want)
		}
	}
}

func TestFirstMatch(t *testing.T) {
	s := NewSet(0)
	s.Add(1)
	s.Add(2)
	s.Add(3)
	item, ok := s.FirstMatch(func(item interface{}) bool { return item.(int) > 1 })
	if !ok || item.(int) != 2 {
		t.Fatalf("FirstMatch() = (%v, %v), want (2, true)", item, ok)
	}
	_, ok = s.FirstMatch(func(item interface{}) bool { return item.(int) > 10 })
	if ok {
		t.Fatal("expected no match")
	}
}

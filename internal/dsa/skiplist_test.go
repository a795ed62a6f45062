package dsa

import "testing"

func TestSkipList_InsertAndHead(t *testing.T) {
	l := NewSkipList[int, string]()
	if !l.IsEmpty() {
		t.Fatal("new list should be empty")
	}
	l.Insert(5, "five")
	l.Insert(1, "one")
	l.Insert(3, "three")

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	n, ok := l.Head()
	if !ok || n.Key() != 1 || n.Value() != "one" {
		t.Fatalf("Head() = (%v, %v, %v), want (1, one, true)", n.Key(), n.Value(), ok)
	}
}

func TestSkipList_AscendingTraversal(t *testing.T) {
	l := NewSkipList[int, int]()
	for _, k := range []int{40, 10, 30, 20} {
		l.Insert(k, k*100)
	}
	var got []int
	n, ok := l.Head()
	for ok {
		got = append(got, n.Key())
		n, ok = l.Next(n)
	}
	want := []int{10, 20, 30, 40}
	if len(got) != len(want) {
		t.Fatalf("traversal = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("traversal[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSkipList_InsertOverwritesExistingKey(t *testing.T) {
	l := NewSkipList[int, string]()
	l.Insert(1, "first")
	l.Insert(1, "second")
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
	n, _ := l.Head()
	if n.Value() != "second" {
		t.Errorf("Value() = %q, want %q", n.Value(), "second")
	}
}

func TestSkipList_Delete(t *testing.T) {
	l := NewSkipList[int, string]()
	l.Insert(1, "a")
	l.Insert(2, "b")
	l.Insert(3, "c")

	if !l.Delete(2) {
		t.Fatal("Delete(2) should succeed")
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	if l.Delete(2) {
		t.Fatal("Delete(2) again should fail")
	}

	var got []int
	n, ok := l.Head()
	for ok {
		got = append(got, n.Key())
		n, ok = l.Next(n)
	}
	want := []int{1, 3}
	if len(got) != len(want) || got[0] != 1 || got[1] != 3 {
		t.Errorf("traversal after delete = %v, want %v", got, want)
	}
}

func TestSkipList_DeleteEmptiesList(t *testing.T) {
	l := NewSkipList[int, string]()
	l.Insert(1, "a")
	l.Delete(1)
	if !l.IsEmpty() {
		t.Error("list should be empty after deleting its only entry")
	}
	if _, ok := l.Head(); ok {
		t.Error("Head() on empty list should report ok=false")
	}
}

package storage

import (
	"reflect"
	"testing"
)

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := New[string]()
	s.Set("b", "second")
	s.Set("a", "first")
	s.Set("c", "third")

	s.Set("b", "second-updated")

	expected := []string{"second-updated", "first", "third"}
	if got := s.GetAll(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestStoreReplaceAndDelete(t *testing.T) {
	s := New[int]()
	s.Set("x", 1)

	if s.Replace("missing", 2) {
		t.Error("Expected Replace of a missing id to report false")
	}
	if !s.Replace("x", 3) {
		t.Error("Expected Replace of x to report true")
	}
	if v, _ := s.Get("x"); v != 3 {
		t.Errorf("Expected 3, got %d", v)
	}

	if !s.Delete("x") {
		t.Error("Expected Delete of x to report true")
	}
	if s.Delete("x") {
		t.Error("Expected second Delete of x to report false")
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty store, got %d items", s.Len())
	}
	if got := s.GetAll(); len(got) != 0 {
		t.Errorf("Expected no items, got %v", got)
	}
}

package storage

import (
	"bytes"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("Get(missing) = ok %v, err %v; want false, nil", ok, err)
	}

	data := []byte("best_score: 10\n")
	if err := s.Set("k", data); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data[0] = 'X'

	got, ok, err := s.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get(k) = ok %v, err %v", ok, err)
	}
	if !bytes.Equal(got, []byte("best_score: 10\n")) {
		t.Errorf("Get(k) = %q, stored value must not alias the caller's slice", got)
	}
}

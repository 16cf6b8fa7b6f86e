package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret1" {
		t.Fatalf("hash must not be the plain password")
	}
	if err := h.Compare(hash, "secret1"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := h.Compare(hash, "nope"); err == nil {
		t.Fatalf("expected mismatch")
	}
}

func TestHasher_CostBounds(t *testing.T) {
	if NewHasher(0).cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost")
	}
	if NewHasher(1).cost != bcrypt.MinCost {
		t.Fatalf("expected min cost")
	}
	if NewHasher(99).cost != bcrypt.MaxCost {
		t.Fatalf("expected max cost")
	}
	if _, err := NewHasher(bcrypt.MinCost).Hash(""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

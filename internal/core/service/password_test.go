package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash %q", hash)
	}
	if !h.VerifyPassword("correct horse", hash) {
		t.Fatalf("expected password to verify")
	}
}

func TestBcryptHasher_SingleBitChangeFails(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mutated := []byte("secret")
	mutated[0] ^= 0x01
	if h.VerifyPassword(string(mutated), hash) {
		t.Fatalf("mutated password must not verify")
	}
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	a, _ := h.HashPassword("same")
	b, _ := h.HashPassword("same")
	if a == b {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestBcryptHasher_MalformedHashNeverMatches(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	for _, hash := range []string{"", "plain", "$2a$04$short"} {
		if h.VerifyPassword("plain", hash) {
			t.Fatalf("hash %q must not match", hash)
		}
	}
}

func TestNewBcryptHasher_CostOutOfRange(t *testing.T) {
	for _, cost := range []int{0, 3, 32} {
		if got := NewBcryptHasher(cost).cost; got != bcrypt.DefaultCost {
			t.Fatalf("cost %d: expected default, got %d", cost, got)
		}
	}
	if got := NewBcryptHasher(12).cost; got != 12 {
		t.Fatalf("expected cost 12, got %d", got)
	}
}

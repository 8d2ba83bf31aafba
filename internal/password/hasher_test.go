package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "secret" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := h.Compare(hash, "secret"); err != nil {
		t.Errorf("matching password rejected: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestBcryptHasherRejectsEmptyPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	if _, err := h.Hash(""); err == nil {
		t.Fatal("empty password must not hash")
	}
}

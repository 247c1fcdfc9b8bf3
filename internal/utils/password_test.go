package utils

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if !IsArgon2Hash(hash) || strings.Contains(hash, "hunter2") {
		t.Fatalf("unexpected hash %q", hash)
	}

	ok, err := VerifyPassword("hunter2", hash)
	if err != nil || !ok {
		t.Fatalf("VerifyPassword(correct) = %v, %v", ok, err)
	}
	ok, err = VerifyPassword("hunter3", hash)
	if err != nil || ok {
		t.Fatalf("VerifyPassword(wrong) = %v, %v", ok, err)
	}

	other, _ := HashPassword("hunter2")
	if other == hash {
		t.Error("hashes of the same password should be salted differently")
	}
}

func TestVerifyPasswordBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := VerifyPassword("old-pass", string(legacy)); err != nil || !ok {
		t.Fatalf("bcrypt correct = %v, %v", ok, err)
	}
	if ok, err := VerifyPassword("nope", string(legacy)); err != nil || ok {
		t.Fatalf("bcrypt wrong = %v, %v", ok, err)
	}
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	for _, h := range []string{"", "plaintext", "$argon2id$v=19$m=1,t=1$x$y", "$argon2id$v=19$m=a,t=1,p=1$x$y"} {
		if ok, err := VerifyPassword("x", h); ok || err == nil {
			t.Errorf("VerifyPassword(%q) = %v, %v", h, ok, err)
		}
	}
}

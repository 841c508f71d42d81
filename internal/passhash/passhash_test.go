package passhash

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !Verify("correct horse battery staple", hash) {
		t.Error("expected correct secret to verify")
	}
	if Verify("wrong secret", hash) {
		t.Error("expected wrong secret to fail verification")
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h1, err := Hash("same secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := Hash("same secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("expected different hashes for the same secret (random salt)")
	}
}

func TestHash_PHCFormat(t *testing.T) {
	hash, err := Hash("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=4$") {
		t.Errorf("unexpected hash format: %q", hash)
	}
}

// The hash must be one-way: storing the plaintext, or any reversible
// encoding of it such as base64, would let anyone with database access
// read every folder passphrase.
func TestHash_NotReversibleEncoding(t *testing.T) {
	secret := "my folder passphrase"
	hash, err := Hash(secret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(hash, secret) {
		t.Error("hash must not contain the plaintext secret")
	}
	if strings.Contains(hash, base64.StdEncoding.EncodeToString([]byte(secret))) {
		t.Error("hash must not contain a base64 encoding of the secret")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=4$salt",          // too few parts
		"$argon2id$v=19$bogus$AAAA$AAAA",               // unparseable params
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$AAAA",      // invalid salt encoding
		"$argon2id$v=19$m=65536,t=3,p=4$AAAA$!!!",      // invalid hash encoding
	}
	for _, h := range malformed {
		if Verify("anything", h) {
			t.Errorf("expected malformed hash %q to fail verification", h)
		}
	}
}

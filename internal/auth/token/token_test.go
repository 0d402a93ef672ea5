package token

import "testing"

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := GenerateRandomToken(32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a == b {
		t.Fatalf("two tokens identical")
	}
	if len(a) < 40 {
		t.Fatalf("token too short: %d chars", len(a))
	}
}

func TestHashSHA256Deterministic(t *testing.T) {
	h1 := HashSHA256("session-token")
	h2 := HashSHA256("session-token")
	if h1 != h2 {
		t.Fatalf("hash not deterministic")
	}
	if h1 == HashSHA256("other-token") {
		t.Fatalf("distinct tokens collide")
	}
	if len(h1) != 64 {
		t.Fatalf("hash length = %d, want 64 hex chars", len(h1))
	}
}

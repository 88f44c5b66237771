package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret123!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Secret123!" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "Secret123!") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestNewSessionTokenUnique(t *testing.T) {
	a := NewSessionToken()
	b := NewSessionToken()
	if a == "" || a == b {
		t.Errorf("tokens must be non-empty and unique, got %q and %q", a, b)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc123", "abc123", true},
		{"bearer abc123", "abc123", true},
		{"", "", false},
		{"abc123", "", false},
		{"Bearer ", "", false},
		{"Basic abc123", "", false},
	}
	for _, tc := range tests {
		got, err := ExtractBearerToken(tc.header)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ExtractBearerToken(%q) = %q, %v; want %q", tc.header, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ExtractBearerToken(%q) accepted, want error", tc.header)
		}
	}
}

package security

import (
	"encoding/hex"
	"testing"
)

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}

	// Secret should be 64 hex characters (32 bytes)
	if len(secret) != 2*SecretSize {
		t.Errorf("Secret length = %d, want %d", len(secret), 2*SecretSize)
	}
	if _, err := hex.DecodeString(secret); err != nil {
		t.Errorf("Secret is not valid hex: %v", err)
	}

	other, _ := GenerateSecret()
	if secret == other {
		t.Error("GenerateSecret() returned the same secret twice")
	}
}

func TestDecodeSecret(t *testing.T) {
	if got := DecodeSecret("00ff"); len(got) != 2 || got[1] != 0xff {
		t.Errorf("DecodeSecret(hex) = %v, want [0 255]", got)
	}
	if got := string(DecodeSecret("not-hex")); got != "not-hex" {
		t.Errorf("DecodeSecret(raw) = %q, want %q", got, "not-hex")
	}
}

package security

import "testing"

func TestNewSecretIsRandom(t *testing.T) {
	a, err := NewSecret()
	if err != nil {
		t.Fatalf("new secret: %v", err)
	}
	b, err := NewSecret()
	if err != nil {
		t.Fatalf("new secret: %v", err)
	}
	if a == b || len(a) < 40 {
		t.Fatalf("expected two distinct long secrets, got %q %q", a, b)
	}
}

func TestCSRFTokenVerifiesOnlyForItsSession(t *testing.T) {
	token, err := CSRFToken("secret", "session-a")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if !VerifyCSRF("secret", "session-a", token) {
		t.Fatalf("expected token to verify for its session")
	}
	if VerifyCSRF("secret", "session-b", token) {
		t.Fatalf("expected token to fail for another session")
	}
	if VerifyCSRF("other", "session-a", token) {
		t.Fatalf("expected token to fail under another secret")
	}
	if VerifyCSRF("secret", "session-a", "") {
		t.Fatalf("expected empty token to fail")
	}
}

func TestCSRFTokenRequiresInputs(t *testing.T) {
	if _, err := CSRFToken("", "id"); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := CSRFToken("secret", ""); err == nil {
		t.Fatalf("expected error for empty session id")
	}
}

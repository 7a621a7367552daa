package crypto

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken("64f1c2d8a1b2c3d4e5f60718", "auth", "test-secret")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}
}

func TestValidateTokenValid(t *testing.T) {
	secret := "test-secret"
	userID := "64f1c2d8a1b2c3d4e5f60718"

	token, err := GenerateToken(userID, "auth", secret)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("ValidateToken() UserID = %q, want %q", claims.UserID, userID)
	}
	if claims.Access != "auth" {
		t.Errorf("ValidateToken() Access = %q, want %q", claims.Access, "auth")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("not-a-valid-token", "test-secret")
	if err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("64f1c2d8a1b2c3d4e5f60718", "auth", "correct-secret")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ValidateToken(token, "wrong-secret")
	if err == nil {
		t.Error("ValidateToken() expected error for wrong secret")
	}
}

func TestValidateTokenWrongAlgorithm(t *testing.T) {
	// Tokens signed with "none" must be rejected even if decodable.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "x", Access: "auth"})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = ValidateToken(tokenString, "test-secret")
	if err == nil {
		t.Error("ValidateToken() expected error for unsigned token")
	}
}

func TestValidateTokenNoExpiry(t *testing.T) {
	claims, err := ValidateToken(mustGenerate(t, "64f1c2d8a1b2c3d4e5f60718", "auth", "s"), "s")
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Error("tokens must not carry an expiry; revocation is by store membership")
	}
}

func TestGenerateTokenDistinctPerCall(t *testing.T) {
	// Two logins in the same second must still yield different tokens, or
	// revoking one session's token would revoke the other's too.
	t1 := mustGenerate(t, "64f1c2d8a1b2c3d4e5f60718", "auth", "s")
	t2 := mustGenerate(t, "64f1c2d8a1b2c3d4e5f60718", "auth", "s")
	if t1 == t2 {
		t.Error("back-to-back tokens for the same user and scope must differ")
	}
}

func TestGenerateTokenDistinctScopes(t *testing.T) {
	t1 := mustGenerate(t, "64f1c2d8a1b2c3d4e5f60718", "auth", "s")
	t2 := mustGenerate(t, "64f1c2d8a1b2c3d4e5f60718", "other", "s")
	if t1 == t2 {
		t.Error("tokens for different scopes should differ")
	}
}

func mustGenerate(t *testing.T, userID, access, secret string) string {
	t.Helper()
	token, err := GenerateToken(userID, access, secret)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	return token
}

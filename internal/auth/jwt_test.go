package auth

import (
	"testing"
	"time"

	"github.com/taskhive-dev/taskhive/internal/models"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	if err := InitJWT("test-secret", 30); err != nil {
		t.Fatalf("InitJWT() error = %v", err)
	}

	token, err := GenerateJWT(42, models.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT() error = %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, models.RoleAdmin)
	}
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	if err := InitJWT("secret-one", 30); err != nil {
		t.Fatalf("InitJWT() error = %v", err)
	}

	token, err := GenerateJWT(1, models.RoleTeamMember)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if err := InitJWT("secret-two", 30); err != nil {
		t.Fatalf("InitJWT() error = %v", err)
	}

	if _, err := VerifyJWT(token); err == nil {
		t.Error("VerifyJWT() should fail for a token signed with a different secret")
	}
}

func TestVerifyJWT_Expired(t *testing.T) {
	if err := InitJWT("test-secret", 30); err != nil {
		t.Fatalf("InitJWT() error = %v", err)
	}

	jwtTTL = -time.Minute
	defer func() { jwtTTL = 30 * 24 * time.Hour }()

	token, err := GenerateJWT(7, models.RoleTeamMember)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := VerifyJWT(token); err == nil {
		t.Error("VerifyJWT() should fail for an expired token")
	}
}

func TestVerifyJWT_Malformed(t *testing.T) {
	if err := InitJWT("test-secret", 30); err != nil {
		t.Fatalf("InitJWT() error = %v", err)
	}

	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := VerifyJWT(token); err == nil {
			t.Errorf("VerifyJWT(%q) should fail", token)
		}
	}
}

func TestInitJWT_EmptySecret(t *testing.T) {
	if err := InitJWT("", 30); err == nil {
		t.Error("InitJWT() should reject an empty secret")
	}
}

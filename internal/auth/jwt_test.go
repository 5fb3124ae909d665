package auth

import (
	"testing"

	"po-backend/internal/config"
	"po-backend/internal/models"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "po-backend-test"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())
	user := &models.User{ID: 42, Email: "buyer@example.com", Role: "manager"}

	token, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "buyer@example.com" || claims.Role != "manager" {
		t.Errorf("claims = %+v, want user 42 / buyer@example.com / manager", claims)
	}
	if claims.Issuer != "po-backend-test" {
		t.Errorf("issuer = %q, want po-backend-test", claims.Issuer)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())
	token, err := mgr.GenerateToken(&models.User{ID: 1, Email: "a@b.c", Role: "staff"})
	if err != nil {
		t.Fatal(err)
	}

	otherCfg := testJWTConfig()
	otherCfg.JWT.Secret = "different-secret"
	if _, err := NewJWTManager(otherCfg).ValidateToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestTempTokenIsNotASessionToken(t *testing.T) {
	mgr := NewJWTManager(testJWTConfig())
	user := &models.User{ID: 7, Email: "totp@example.com", Role: "staff"}

	temp, err := mgr.GenerateTempToken(user)
	if err != nil {
		t.Fatalf("GenerateTempToken: %v", err)
	}

	claims, err := mgr.ValidateTempToken(temp)
	if err != nil {
		t.Fatalf("ValidateTempToken: %v", err)
	}
	if claims.UserID != 7 || claims.Type != "2fa_pending" {
		t.Errorf("temp claims = %+v, want user 7 with type 2fa_pending", claims)
	}

	// A full session token must not pass temp validation
	session, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.ValidateTempToken(session); err == nil {
		t.Error("session token accepted as a 2FA temp token")
	}
}

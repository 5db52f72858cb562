package auth

import "testing"

func TestEditorTokenRoundTrip(t *testing.T) {
	token, err := GenerateEditorToken("editor-1")
	if err != nil {
		t.Fatalf("GenerateEditorToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.EditorID != "editor-1" {
		t.Errorf("Expected editor-1, got %s", claims.EditorID)
	}
	if claims.Role != "editor" {
		t.Errorf("Expected role editor, got %s", claims.Role)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("Expected error for malformed token")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	original := JWTSecret
	defer func() { JWTSecret = original }()

	token, err := GenerateEditorToken("editor-1")
	if err != nil {
		t.Fatal(err)
	}

	SetSecret("a-different-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("Expected validation to fail after secret change")
	}
}

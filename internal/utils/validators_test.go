package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.domain.org", true},
		{"", false},
		{"plainaddress", false},
		{"@missing-local.com", false},
		{"user@", false},
		{"user@nodot", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestIsComplexPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Secret123!", true},
		{"too short", "Ab1!", false},
		{"no uppercase", "secret123!", false},
		{"no lowercase", "SECRET123!", false},
		{"no digit", "Secretive!", false},
		{"no symbol", "Secret1234", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComplexPassword(tt.password); got != tt.want {
				t.Errorf("IsComplexPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

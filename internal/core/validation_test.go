// AngelaMos | 2026
// validation_test.go

package core

import (
	"strings"
	"testing"
)

type passwordForm struct {
	Password string `validate:"required,min=8,max=16,password"`
}

type nameForm struct {
	Name string `validate:"required,min=20,max=60"`
}

func TestPasswordRule(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"uppercase and symbol", "Valid@pw1", true},
		{"boundary eight chars", "Abcdef1!", true},
		{"boundary sixteen chars", "Abcdefghijklmn1!", true},
		{"missing uppercase", "invalid@pw1", false},
		{"missing symbol", "Invalidpw1", false},
		{"too short", "Ab@1", false},
		{"too long", "Abcdefghijklmno1!", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(passwordForm{Password: tc.password})
			if tc.valid && err != nil {
				t.Fatalf("expected %q to pass: %v", tc.password, err)
			}
			if !tc.valid && err == nil {
				t.Fatalf("expected %q to fail", tc.password)
			}
		})
	}
}

func TestNameLengthBounds(t *testing.T) {
	v := NewValidator()

	if err := v.Struct(nameForm{Name: strings.Repeat("a", 20)}); err != nil {
		t.Fatalf("expected 20-char name to pass: %v", err)
	}
	if err := v.Struct(nameForm{Name: strings.Repeat("a", 60)}); err != nil {
		t.Fatalf("expected 60-char name to pass: %v", err)
	}
	if err := v.Struct(nameForm{Name: strings.Repeat("a", 19)}); err == nil {
		t.Fatal("expected 19-char name to fail")
	}
	if err := v.Struct(nameForm{Name: strings.Repeat("a", 61)}); err == nil {
		t.Fatal("expected 61-char name to fail")
	}
}

func TestFormatValidationErrorNamesField(t *testing.T) {
	v := NewValidator()

	err := v.Struct(passwordForm{Password: "nopunct1"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := FormatValidationError(err)
	if !strings.Contains(strings.ToLower(msg), "password") {
		t.Fatalf("expected message to mention password, got %q", msg)
	}
}

package validator

import "testing"

type registration struct {
	Name            string `validate:"required,max=120"`
	Phone           string `validate:"required,inmobile"`
	Email           string `validate:"required,email"`
	PreferredCourse string `validate:"max=120"`
}

func TestIndianMobileTag(t *testing.T) {
	v := New()

	if err := v.Var("9876543210", "inmobile"); err != nil {
		t.Fatalf("expected valid mobile, got %v", err)
	}
	if err := v.Var("+91 98765 43210", "inmobile"); err != nil {
		t.Fatalf("expected formatted mobile to pass, got %v", err)
	}
	if err := v.Var("1234567890", "inmobile"); err == nil {
		t.Fatalf("expected number starting with 1 to fail")
	}
}

func TestFieldErrors(t *testing.T) {
	v := New()

	err := v.Struct(registration{Name: "", Phone: "12345", Email: "nope"})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	fields := FieldErrors(err)
	if fields["name"] != "is required" {
		t.Fatalf("unexpected name message %q", fields["name"])
	}
	if fields["phone"] != "must be a valid 10-digit mobile number" {
		t.Fatalf("unexpected phone message %q", fields["phone"])
	}
	if fields["email"] != "must be a valid email address" {
		t.Fatalf("unexpected email message %q", fields["email"])
	}
	if _, ok := fields["preferred_course"]; ok {
		t.Fatalf("did not expect preferred_course error")
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if FieldErrors(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

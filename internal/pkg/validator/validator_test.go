package validator

import "testing"

func TestValidator(t *testing.T) {
	v := New()

	if !v.Valid() {
		t.Error("fresh validator should be valid")
	}

	v.Check(true, "title", "must be provided")
	if !v.Valid() {
		t.Error("passing check should keep the validator valid")
	}

	v.Check(false, "title", "must be provided")
	if v.Valid() {
		t.Error("failing check should invalidate")
	}
	if v.Errors["title"] != "must be provided" {
		t.Errorf("errors = %v", v.Errors)
	}

	// The first error for a key wins.
	v.Check(false, "title", "second message")
	if v.Errors["title"] != "must be provided" {
		t.Errorf("errors = %v, first message should be kept", v.Errors)
	}

	v.Check(false, "date", "must be a date")
	if len(v.Errors) != 2 {
		t.Errorf("got %d errors, want 2", len(v.Errors))
	}
}

package validators

import "testing"

func TestIsEmailValid(t *testing.T) {
	valid := []string{"ana@example.com", "a.b+c@mail.example.org"}
	invalid := []string{"", "ana", "ana@", "ana@localhost", "Ana <ana@example.com>", "ana@example.", "ana@.com"}

	for _, e := range valid {
		if !IsEmailValid(e) {
			t.Errorf("%q should be valid", e)
		}
	}
	for _, e := range invalid {
		if IsEmailValid(e) {
			t.Errorf("%q should be invalid", e)
		}
	}
}

func TestIsPhoneValid(t *testing.T) {
	if !IsPhoneValid("+55 (11) 99999-0000") {
		t.Error("formatted phone rejected")
	}
	if IsPhoneValid("1234") {
		t.Error("too short")
	}
	if IsPhoneValid("11 9999 abc") {
		t.Error("letters accepted")
	}
}

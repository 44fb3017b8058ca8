package contact

import (
	"errors"
	"testing"
)

func phoneStrings(r *Record) []string {
	phones := r.Phones()
	out := make([]string, len(phones))
	for i, p := range phones {
		out[i] = p.String()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewRecord_Empty(t *testing.T) {
	r := NewRecord("")
	if r.Name() != "" {
		t.Errorf("Name() = %q, want empty", r.Name())
	}
	if len(r.Phones()) != 0 {
		t.Errorf("Phones() len = %d, want 0", len(r.Phones()))
	}
	if _, ok := r.Birthday(); ok {
		t.Error("new record should have no birthday")
	}
}

func TestRecord_AddPhone_KeepsOrderAndDuplicates(t *testing.T) {
	r := NewRecord("Ann")
	for _, raw := range []string{"1111111111", "2222222222", "1111111111"} {
		if err := r.AddPhone(raw); err != nil {
			t.Fatalf("AddPhone(%q) error = %v", raw, err)
		}
	}

	want := []string{"1111111111", "2222222222", "1111111111"}
	if got := phoneStrings(r); !equalStrings(got, want) {
		t.Errorf("phones = %v, want %v", got, want)
	}
}

func TestRecord_AddPhone_Invalid(t *testing.T) {
	r := NewRecord("Ann")
	err := r.AddPhone("12345")
	if !errors.Is(err, ErrInvalidPhoneFormat) {
		t.Fatalf("AddPhone error = %v, want ErrInvalidPhoneFormat", err)
	}
	if len(r.Phones()) != 0 {
		t.Errorf("invalid phone should not be stored, got %v", phoneStrings(r))
	}
}

func TestRecord_Phones_ReturnsCopy(t *testing.T) {
	r := NewRecord("Ann")
	_ = r.AddPhone("1111111111")

	phones := r.Phones()
	phones[0] = Phone{digits: "2222222222"}

	if got := phoneStrings(r); got[0] != "1111111111" {
		t.Errorf("record mutated through Phones() copy: %v", got)
	}
}

func TestRecord_RemovePhone(t *testing.T) {
	tests := []struct {
		name   string
		phones []string
		remove string
		want   []string
	}{
		{"removes all matches", []string{"1111111111", "2222222222", "1111111111"}, "1111111111", []string{"2222222222"}},
		{"absent is no-op", []string{"1111111111"}, "3333333333", []string{"1111111111"}},
		{"empty list", nil, "1111111111", []string{}},
		{"invalid raw is no-op", []string{"1111111111"}, "abc", []string{"1111111111"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord("Ann")
			for _, p := range tt.phones {
				_ = r.AddPhone(p)
			}
			r.RemovePhone(tt.remove)
			if got := phoneStrings(r); !equalStrings(got, tt.want) {
				t.Errorf("phones = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecord_EditPhone_Valid(t *testing.T) {
	// Given a record holding the old phone
	r := NewRecord("Ann")
	_ = r.AddPhone("1111111111")
	_ = r.AddPhone("2222222222")

	// When the phone is edited to a valid number
	if err := r.EditPhone("1111111111", "3333333333"); err != nil {
		t.Fatalf("EditPhone error = %v", err)
	}

	// Then the old phone is gone and the new one is appended
	if _, ok := r.FindPhone("1111111111"); ok {
		t.Error("old phone still present")
	}
	want := []string{"2222222222", "3333333333"}
	if got := phoneStrings(r); !equalStrings(got, want) {
		t.Errorf("phones = %v, want %v", got, want)
	}
}

func TestRecord_EditPhone_InvalidLosesOldPhone(t *testing.T) {
	// Given a record holding the old phone
	r := NewRecord("Ann")
	_ = r.AddPhone("1111111111")

	// When the phone is edited to an invalid number
	err := r.EditPhone("1111111111", "bad")

	// Then the edit fails and the old phone has already been removed
	if !errors.Is(err, ErrInvalidPhoneFormat) {
		t.Fatalf("EditPhone error = %v, want ErrInvalidPhoneFormat", err)
	}
	if _, ok := r.FindPhone("1111111111"); ok {
		t.Error("old phone should be removed even when the new one is invalid")
	}
	if len(r.Phones()) != 0 {
		t.Errorf("phones = %v, want none", phoneStrings(r))
	}
}

func TestRecord_FindPhone(t *testing.T) {
	r := NewRecord("Ann")
	_ = r.AddPhone("1111111111")
	_ = r.AddPhone("2222222222")

	p, ok := r.FindPhone("2222222222")
	if !ok || p.String() != "2222222222" {
		t.Errorf("FindPhone = (%v, %v), want (2222222222, true)", p, ok)
	}
	if _, ok := r.FindPhone("3333333333"); ok {
		t.Error("FindPhone should report absent phone")
	}
}

func TestRecord_SetBirthday(t *testing.T) {
	r := NewRecord("Ann")
	if err := r.SetBirthday("12.06.2020"); err != nil {
		t.Fatalf("SetBirthday error = %v", err)
	}
	if err := r.SetBirthday("01.01.1990"); err != nil {
		t.Fatalf("SetBirthday error = %v", err)
	}

	b, ok := r.Birthday()
	if !ok {
		t.Fatal("Birthday() ok = false, want true")
	}
	if b.String() != "01.01.1990" {
		t.Errorf("birthday = %q, want overwritten %q", b.String(), "01.01.1990")
	}
}

func TestRecord_SetBirthday_InvalidKeepsPrevious(t *testing.T) {
	r := NewRecord("Ann")
	_ = r.SetBirthday("12.06.2020")

	err := r.SetBirthday("31.02.2020")
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("SetBirthday error = %v, want ErrInvalidDateFormat", err)
	}
	if b, _ := r.Birthday(); b.String() != "12.06.2020" {
		t.Errorf("birthday = %q, want unchanged %q", b.String(), "12.06.2020")
	}
}

func TestRecord_String(t *testing.T) {
	tests := []struct {
		name     string
		phones   []string
		birthday string
		want     string
	}{
		{"no phones", nil, "", "Contact name: Ann, phones: "},
		{"one phone", []string{"1111111111"}, "", "Contact name: Ann, phones: 1111111111"},
		{"two phones", []string{"1111111111", "2222222222"}, "", "Contact name: Ann, phones: 1111111111, 2222222222"},
		{"with birthday", []string{"1111111111"}, "12.06.2020", "Contact name: Ann, phones: 1111111111, Birthday: 12.06.2020"},
		{"birthday without phones", nil, "05.03.1999", "Contact name: Ann, phones: , Birthday: 05.03.1999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord("Ann")
			for _, p := range tt.phones {
				_ = r.AddPhone(p)
			}
			if tt.birthday != "" {
				_ = r.SetBirthday(tt.birthday)
			}
			if got := r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

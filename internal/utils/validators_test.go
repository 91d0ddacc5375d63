package utils

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	cases := map[string]string{
		"+79161234567":    "+79161234567",
		"89161234567":     "+79161234567",
		"79161234567":     "+79161234567",
		"9161234567":      "+79161234567",
		"8 916 123-45-67": "+79161234567",
	}
	for in, want := range cases {
		got, err := ValidatePhoneNumber(in)
		if err != nil {
			t.Fatalf("ValidatePhoneNumber(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ValidatePhoneNumber(%q) = %q, want %q", in, got, want)
		}
	}
	for _, bad := range []string{"", "12345", "+1 555 0100"} {
		if _, err := ValidatePhoneNumber(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestValidateGosNumber(t *testing.T) {
	got, err := ValidateGosNumber("а 123 бв 77")
	if err != nil {
		t.Fatalf("gos number: %v", err)
	}
	if got != "А123БВ77" {
		t.Fatalf("normalized: %q", got)
	}
	if _, err := ValidateGosNumber("Ж123ЗИ77"); err == nil {
		t.Fatal("letters outside the plate alphabet must be rejected")
	}
}

func TestParsePrice(t *testing.T) {
	if v, err := ParsePrice("1 500,50"); err != nil || v != 1500.50 {
		t.Fatalf("ParsePrice: %v %v", v, err)
	}
	if _, err := ParsePrice("-10"); err == nil {
		t.Fatal("negative price must be rejected")
	}
}

func TestPlural(t *testing.T) {
	cases := map[int]string{1: "задание", 2: "задания", 5: "заданий", 11: "заданий", 21: "задание"}
	for n, want := range cases {
		if got := Plural(n, "задание", "задания", "заданий"); got != want {
			t.Fatalf("Plural(%d) = %q, want %q", n, got, want)
		}
	}
}

package workflow

import "testing"

func TestSanitizeFilter(t *testing.T) {
	cases := map[string]string{
		"12ab34567890123456": "123456789012345",
		"  867-530-9  ":      "8675309",
		"abcdef":             "",
		"123456789012345":    "123456789012345",
	}
	for input, want := range cases {
		if got := SanitizeFilter(input); got != want {
			t.Fatalf("SanitizeFilter(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestTrimIMEI(t *testing.T) {
	if got := TrimIMEI(" 1234567890123456789 "); got != "123456789012345" {
		t.Fatalf("expected scanner overrun truncated, got %q", got)
	}
	if got := TrimIMEI("12345"); got != "12345" {
		t.Fatalf("short input must pass through, got %q", got)
	}
}

func TestValidIMEI(t *testing.T) {
	if !ValidIMEI("123456789012345") {
		t.Fatal("expected 15 digits to be valid")
	}
	if ValidIMEI("12345678901234") || ValidIMEI("12345678901234a") {
		t.Fatal("expected short or non-numeric imei to be invalid")
	}
}

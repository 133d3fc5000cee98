package referral

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"AB12CD34", true},
		{"ABCDEFGH", true},
		{"12345678", true},
		{"ab12cd34", false}, // lowercase
		{"AB12CD3", false},  // too short
		{"AB12CD345", false},
		{"AB12-D34", false},
		{"", false},
	}
	for _, c := range cases {
		if got := Validate(c.code); got != c.want {
			t.Fatalf("Validate(%q) = %v, want %v", c.code, got, c.want)
		}
	}
}

func TestGenerateProducesValidCodes(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate()
		if !Validate(code) {
			t.Fatalf("generated code %q fails validation", code)
		}
	}
}

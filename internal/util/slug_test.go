package util

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Royal Bridal Chappal":   "royal-bridal-chappal",
		"  Party  Wear!! ":       "party-wear",
		"Daily_Comfort / Sandal": "daily-comfort-sandal",
		"Sandal":                 "sandal",
		"":                       "",
		"---":                    "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSha256Base64URL_Stable(t *testing.T) {
	a := Sha256Base64URL("123456")
	if a != Sha256Base64URL("123456") {
		t.Fatal("hash must be deterministic")
	}
	if a == Sha256Base64URL("123457") {
		t.Fatal("different inputs must hash differently")
	}
	if len(a) != 43 {
		t.Errorf("len = %d, want 43", len(a))
	}
}

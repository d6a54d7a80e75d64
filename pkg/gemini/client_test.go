package gemini

import "testing"

func TestImageFormat(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"image/jpeg", "jpeg"},
		{"image/png", "png"},
		{"image/webp; charset=binary", "webp"},
		{"jpeg", "jpeg"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := imageFormat(tc.in); got != tc.expected {
			t.Errorf("imageFormat(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

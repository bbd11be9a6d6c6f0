package app

import "testing"

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"slipframe.app", "*.slipframe.app", "localhost:*"}

	cases := []struct {
		origin string
		want   bool
	}{
		{"https://slipframe.app", true},
		{"https://studio.slipframe.app", true},
		{"http://localhost:3000", true},
		{"http://localhost:5173", true},
		{"https://evil.example.com", false},
		{"https://slipframe.app.evil.com", false},
	}
	for _, tc := range cases {
		if got := originAllowed(patterns, tc.origin); got != tc.want {
			t.Errorf("originAllowed(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}
}

func TestOriginAllowedEmptyPatterns(t *testing.T) {
	if originAllowed(nil, "https://anything.example") {
		t.Error("empty pattern list must not allow anything")
	}
}

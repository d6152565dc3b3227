package models

import "testing"

func TestValidStatusTransition(t *testing.T) {
	cases := []struct {
		from  string
		to    string
		valid bool
	}{
		{"accepted", "calling", true},
		{"accepted", "cancelled", true},
		{"accepted", "completed", false},
		{"calling", "completed", true},
		{"calling", "cancelled", true},
		{"calling", "accepted", false},
		{"completed", "calling", false},
		{"completed", "cancelled", true},
		{"completed", "accepted", false},
		{"cancelled", "accepted", false},
		{"cancelled", "cancelled", false},
		{"accepted", "accepted", false},
		{"unknown", "calling", false},
	}

	for _, tt := range cases {
		if got := ValidStatusTransition(tt.from, tt.to); got != tt.valid {
			t.Fatalf("ValidStatusTransition(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

package service

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from  string
		to    string
		valid bool
	}{
		{"pending", "confirmed", true},
		{"pending", "in_progress", true},
		{"pending", "cancelled", true},
		{"pending", "done", false},
		{"confirmed", "in_progress", true},
		{"confirmed", "cancelled", true},
		{"confirmed", "pending", false},
		{"in_progress", "done", true},
		{"in_progress", "cancelled", true},
		{"in_progress", "confirmed", false},
		{"done", "cancelled", false},
		{"done", "pending", false},
		{"cancelled", "pending", false},
		{"cancelled", "done", false},
		{"unknown", "done", false},
	}

	for _, tt := range cases {
		if got := CanTransition(tt.from, tt.to); got != tt.valid {
			t.Fatalf("CanTransition(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	for status, terminal := range map[string]bool{
		"pending":     false,
		"confirmed":   false,
		"in_progress": false,
		"done":        true,
		"cancelled":   true,
	} {
		if got := IsTerminalStatus(status); got != terminal {
			t.Fatalf("IsTerminalStatus(%q)=%v, want %v", status, got, terminal)
		}
	}
}

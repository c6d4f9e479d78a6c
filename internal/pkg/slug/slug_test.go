package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Fall 2024", "fall-2024"},
		{"course code", "CSC 108", "csc-108"},
		{"punctuation runs", "Midterm -- Review!!", "midterm-review"},
		{"leading and trailing junk", "  --Lab Notes--  ", "lab-notes"},
		{"already a slug", "lab-notes", "lab-notes"},
		{"empty", "", ""},
		{"only punctuation", "+++", ""},
		{"mixed case", "Intro To Programming", "intro-to-programming"},
		{"tabs and newlines", "one\ttwo\nthree", "one-two-three"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMakeIsLowercaseAndWhitespaceFree(t *testing.T) {
	inputs := []string{
		"Winter Session", "PHY136H1", "A b C d E", "\t spaced \n out \t",
		"Notes: Week #5 (draft)",
	}
	for _, in := range inputs {
		got := Make(in)
		assert.Equal(t, strings.ToLower(got), got, "slug must be lowercase: %q", in)
		assert.NotContains(t, got, " ", "slug must contain no whitespace: %q", in)
		assert.Equal(t, got, Make(in), "slug must be stable for equal input: %q", in)
	}
}

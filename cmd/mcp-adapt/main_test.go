package main

import "testing"

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"generat", "generate"},
		{"genrate", "generate"},
		{"generae", "generate"},
		{"prase", "parse"},
		{"parce", "parse"},
		{"pars", "parse"},
		{"valiate", "validate"},
		{"validat", "validate"},
		{"vlidate", "validate"},
		{"tagets", "targets"},
		{"target", "targets"},
		{"serv", "serve"},
		{"sreve", "serve"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"generatation", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := suggestCommand(tt.input)
			if got != tt.expected {
				t.Errorf("suggestCommand(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"serve", "serve", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"serve", "serv", 1},
		{"parse", "prase", 2},
		{"generate", "validate", 5},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			got := editDistance(tt.a, tt.b)
			if got != tt.expected {
				t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

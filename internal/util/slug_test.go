package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"Zürich über alles", "zurich-uber-alles"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"already-a-slug", "already-a-slug"},
		{"UPPERCASE", "uppercase"},
		{"100% Swiss Made", "100-swiss-made"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "hello-world", "post-123", "2026-review"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-leading", "trailing-", "double--hyphen", "Upper", "with space", "umläut"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

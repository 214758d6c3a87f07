package service

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dog", "dog"},
		{"  Working Dog  ", "working-dog"},
		{"Cats & Kittens!", "cats-kittens"},
		{"snake_case--name", "snake-case-name"},
		{"--Hyphens--", "hyphens"},
		{"Bird (Exotic)", "bird-exotic"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

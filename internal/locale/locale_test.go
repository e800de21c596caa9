package locale

import "testing"

func TestIsSupported(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"en", true},
		{"de", true},
		{"EN", false},
		{"De", false},
		{"fr", false},
		{"en-US", false},
		{"", false},
		{" en", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := IsSupported(tt.code); got != tt.want {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestPick(t *testing.T) {
	tests := []struct {
		name   string
		en, de string
		locale string
		want   string
	}{
		{"german with value", "Hello", "Hallo", "de", "Hallo"},
		{"german without value", "Hello", "", "de", "Hello"},
		{"english ignores german", "Hello", "Hallo", "en", "Hello"},
		{"english without german", "Hello", "", "en", "Hello"},
		{"unknown locale falls back", "Hello", "Hallo", "fr", "Hello"},
		{"empty english stays empty", "", "", "de", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pick(tt.en, tt.de, tt.locale); got != tt.want {
				t.Errorf("Pick(%q, %q, %q) = %q, want %q", tt.en, tt.de, tt.locale, got, tt.want)
			}
		})
	}
}

func TestDefaultIsSupported(t *testing.T) {
	if !IsSupported(Default) {
		t.Fatalf("default locale %q is not in the supported set", Default)
	}
}

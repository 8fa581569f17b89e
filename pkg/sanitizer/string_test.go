package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Jane Doe  ",
			want:  "Jane Doe",
		},
		{
			name:  "multiple spaces between words",
			input: "Jane    Doe",
			want:  "Jane Doe",
		},
		{
			name:  "tabs and newlines",
			input: "Ocean\t\nSprings",
			want:  "Ocean Springs",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " 123 Beach Blvd, Biloxi ",
			want:  "123 Beach Blvd, Biloxi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got := NormalizeLocation(tt.input); got != tt.want {
				t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jane@Example.COM "); got != "jane@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestNormalizeChoice(t *testing.T) {
	tests := map[string]string{
		" GLOW ": "glow",
		"14:00":  "14:00",
		"25+":    "25+",
		"":       "",
	}
	for input, want := range tests {
		if got := NormalizeChoice(input); got != want {
			t.Errorf("NormalizeChoice(%q) = %q, want %q", input, got, want)
		}
	}
}

package validation

import (
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"watch URL", "https://www.youtube.com/watch?v=abc12345678", "abc12345678", true},
		{"watch URL extra params", "https://www.youtube.com/watch?feature=share&v=abc12345678&t=42s", "abc12345678", true},
		{"watch URL without scheme", "youtube.com/watch?v=abc12345678", "abc12345678", true},
		{"mobile watch URL", "https://m.youtube.com/watch?v=abc12345678", "abc12345678", true},
		{"short URL", "https://youtu.be/abc12345678", "abc12345678", true},
		{"short URL with timestamp", "https://youtu.be/abc12345678?t=10", "abc12345678", true},
		{"embed URL", "https://www.youtube.com/embed/abc12345678", "abc12345678", true},
		{"shorts URL", "https://youtube.com/shorts/abc12345678", "abc12345678", true},
		{"id with dash and underscore", "https://youtu.be/a-c_2345678", "a-c_2345678", true},
		{"uppercase scheme and host", "HTTPS://WWW.YOUTUBE.COM/watch?v=abc12345678", "abc12345678", true},
		{"mixed case short host", "https://YouTu.be/AbC12345678", "AbC12345678", true},
		{"not a url", "not a url", "", false},
		{"empty", "", "", false},
		{"bare id", "abc12345678", "", false},
		{"other host", "https://vimeo.com/watch?v=abc12345678", "", false},
		{"id too short", "https://youtu.be/abc123", "", false},
		{"id too long", "https://youtu.be/abc123456789", "", false},
		{"watch without id", "https://www.youtube.com/watch?list=PL123", "", false},
		{"text containing 11 chars", "hello world abc12345678 end", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotOK := ExtractVideoID(tt.url)
			if gotOK != tt.wantOK || gotID != tt.wantID {
				t.Errorf("ExtractVideoID(%q) = (%q, %v), want (%q, %v)", tt.url, gotID, gotOK, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestExtractVideoIDSameIDAcrossShapes(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
	}

	var first string
	for i, u := range urls {
		id, ok := ExtractVideoID(u)
		if !ok {
			t.Fatalf("ExtractVideoID(%q) returned no id", u)
		}
		if i == 0 {
			first = id
			continue
		}
		if id != first {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", u, id, first)
		}
	}
}

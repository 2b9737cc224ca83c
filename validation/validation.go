package validation

import (
	"regexp"
	"strings"
)

// videoIDPatterns are tried in order; the first capture group is the id.
// An id is exactly 11 characters and must not be followed by another id character.
// Scheme and host match case-insensitively; the id does not.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?i:(?:https?://)?(?:www\.|m\.|music\.)?youtube\.com)/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`^(?i:(?:https?://)?youtu\.be)/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`^(?i:(?:https?://)?(?:www\.|m\.)?youtube(?:-nocookie)?\.com)/embed/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`^(?i:(?:https?://)?(?:www\.|m\.)?youtube\.com)/(?:shorts|v)/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
}

// ExtractVideoID returns the video id embedded in a YouTube URL. Inputs that
// match none of the known URL shapes are rejected rather than guessed at.
func ExtractVideoID(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

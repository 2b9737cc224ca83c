package transcription

import (
	"regexp"
	"strings"

	"github.com/asticode/go-astisub"
)

var vttTag = regexp.MustCompile(`<[^>]*>`)

// ParseVTT returns the caption text of a WebVTT document as a single line,
// with cue text joined by spaces.
func ParseVTT(body string) string {
	subs, err := astisub.ReadFromWebVTT(strings.NewReader(body))
	if err != nil || len(subs.Items) == 0 {
		return stripVTT(body)
	}

	var texts []string
	for _, item := range subs.Items {
		for _, line := range item.Lines {
			var parts []string
			for _, li := range line.Items {
				if t := cleanCueText(li.Text); t != "" {
					parts = append(parts, t)
				}
			}
			if len(parts) > 0 {
				texts = append(texts, strings.Join(parts, " "))
			}
		}
	}
	return strings.Join(texts, " ")
}

// cleanCueText drops inline timestamp and styling tags, which astisub keeps
// in the text of auto-generated tracks, and collapses whitespace.
func cleanCueText(text string) string {
	return strings.Join(strings.Fields(vttTag.ReplaceAllString(text, "")), " ")
}

// stripVTT is a line-based fallback for documents astisub refuses. Header,
// NOTE, STYLE and REGION blocks run until the next blank line.
func stripVTT(body string) string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")

	var (
		texts  []string
		inNote bool
	)
	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if line == "" {
			inNote = false
			continue
		}
		if inNote {
			continue
		}

		switch {
		case strings.HasPrefix(line, "WEBVTT"), strings.HasPrefix(line, "NOTE"),
			strings.HasPrefix(line, "STYLE"), strings.HasPrefix(line, "REGION"):
			inNote = true
			continue
		case strings.Contains(line, "-->"):
			continue
		case i+1 < len(lines) && strings.Contains(lines[i+1], "-->"):
			// cue identifier
			continue
		}

		if text := strings.TrimSpace(vttTag.ReplaceAllString(line, "")); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, " ")
}

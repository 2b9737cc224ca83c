package models

import (
	"strings"
	"time"
)

// Segment is one timed line of caption text.
type Segment struct {
	Text     string
	Start    time.Duration
	Duration time.Duration
}

// JoinSegments concatenates segment texts in order, separated by single spaces.
func JoinSegments(segments []Segment) string {
	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		texts = append(texts, s.Text)
	}
	return strings.Join(texts, " ")
}

type Transcript struct {
	VideoID string
	Text    string
	Source  string
}

type Result struct {
	VideoID    string
	Transcript string
	Summary    string
}

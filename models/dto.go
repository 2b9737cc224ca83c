package models

// TranscriptRequest is the body of POST /api/transcript
type TranscriptRequest struct {
	URL string `json:"url"`
}

// TranscriptResponse is returned when both transcript and summary were produced
type TranscriptResponse struct {
	Transcript string `json:"transcript"`
	Summary    string `json:"summary"`
	VideoID    string `json:"videoId"`
}

type SummarizeRequest struct {
	Transcript string `json:"transcript"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	VideoID string `json:"videoId,omitempty"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// NewTranscriptResponse creates a response from a pipeline result
func NewTranscriptResponse(r *Result) *TranscriptResponse {
	return &TranscriptResponse{
		Transcript: r.Transcript,
		Summary:    r.Summary,
		VideoID:    r.VideoID,
	}
}

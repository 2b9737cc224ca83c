package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/nijaru/yt-summary/middleware"
	"github.com/nijaru/yt-summary/models"
	"github.com/nijaru/yt-summary/services/video"
	"github.com/nijaru/yt-summary/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const maxRequestBody = 1 << 20

type VideoHandler struct {
	service video.Service
	timeout time.Duration
}

func NewVideoHandler(service video.Service, timeout time.Duration) *VideoHandler {
	return &VideoHandler{service: service, timeout: timeout}
}

func (h *VideoHandler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req models.TranscriptRequest
	if err := decodeJSON(w, r, &req, maxRequestBody); err != nil {
		logger.WithError(err).Warn("Invalid request body")
		utils.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.service.Process(ctx, req.URL)
	if err != nil {
		utils.RespondWithError(w, logger, err)
		return
	}

	logger.WithFields(logrus.Fields{
		"video_id":          result.VideoID,
		"transcript_length": len(result.Transcript),
	}).Info("Transcript and summary produced")
	utils.RespondWithJSON(w, http.StatusOK, models.NewTranscriptResponse(result))
}

// decodeJSON reads a JSON body into v. An empty body leaves v at its zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/nijaru/yt-summary/middleware"
	"github.com/nijaru/yt-summary/models"
	"github.com/nijaru/yt-summary/services/summary"
	"github.com/nijaru/yt-summary/utils"
)

const maxTranscriptBody = 16 << 20

type SummaryHandler struct {
	service summary.Service
	timeout time.Duration
}

func NewSummaryHandler(service summary.Service, timeout time.Duration) *SummaryHandler {
	return &SummaryHandler{service: service, timeout: timeout}
}

func (h *SummaryHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req models.SummarizeRequest
	if err := decodeJSON(w, r, &req, maxTranscriptBody); err != nil {
		logger.WithError(err).Warn("Invalid request body")
		utils.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	text, err := h.service.Summarize(ctx, req.Transcript)
	if err != nil {
		utils.RespondWithError(w, logger, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, &models.SummarizeResponse{Summary: text})
}

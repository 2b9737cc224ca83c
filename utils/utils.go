package utils

import (
	"encoding/json"
	"net/http"

	"github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/models"
	"github.com/sirupsen/logrus"
)

const disabledMessage = "The creator of this video has disabled captions, so no transcript could be retrieved. " +
	"Try a video that has captions enabled."

// StatusFor maps an error kind to the HTTP status returned to the client.
func StatusFor(kind errors.Kind) int {
	switch kind {
	case errors.KindInvalidInput:
		return http.StatusBadRequest
	case errors.KindTranscriptsDisabled:
		return http.StatusForbidden
	case errors.KindConfiguration,
		errors.KindSourceUnavailable,
		errors.KindEmptyResult,
		errors.KindSummarization,
		errors.KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// ErrorBody builds the JSON body for err.
func ErrorBody(err error) (int, *models.ErrorResponse) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Internal("", err, "Internal server error")
	}

	status := StatusFor(appErr.Kind)
	body := &models.ErrorResponse{Error: appErr.Message}

	switch appErr.Kind {
	case errors.KindInvalidInput:
	case errors.KindTranscriptsDisabled:
		body.Message = disabledMessage
		body.VideoID = appErr.VideoID
	default:
		body.Details = appErr.Details()
	}

	return status, body
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	RespondWithJSON(w, statusCode, &models.ErrorResponse{Error: message})
}

// RespondWithError writes the JSON error body for err and logs the failure to logger.
func RespondWithError(w http.ResponseWriter, logger *logrus.Entry, err error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	status, body := ErrorBody(err)

	fields := logrus.Fields{
		"status_code": status,
		"error":       err.Error(),
	}
	if body.VideoID != "" {
		fields["video_id"] = body.VideoID
	}
	entry := logger.WithFields(fields)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	RespondWithJSON(w, status, body)
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Failed to encode JSON response")
	}
}

package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/ilkin0/mimedemo/internal/apperrors"
	"github.com/ilkin0/mimedemo/internal/artifact"
	"github.com/ilkin0/mimedemo/internal/logger"
	"github.com/ilkin0/mimedemo/internal/utils"
)

// Artifact serves the payload produced by entry. The Content-Type header is
// exactly the entry's media type and browsers are told not to second-guess it.
func Artifact(entry artifact.Entry, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}

	return func(w http.ResponseWriter, r *http.Request) {
		a, err := entry.Generate(now())
		if err != nil {
			err = apperrors.WrapProcessingError(err, "failed to generate artifact").
				WithContext("media_type", entry.MediaType)
			logger.FromContext(r.Context()).Error("failed to generate artifact",
				slog.String("media_type", entry.MediaType),
				slog.Any("error", err),
			)
			utils.Error(w, statusFor(err), "Failed to generate content")
			return
		}

		h := w.Header()
		h.Set("Content-Type", a.MediaType)
		h.Set("Content-Length", strconv.Itoa(len(a.Body)))
		h.Set("X-Content-Type-Options", "nosniff")
		if a.Filename != "" {
			h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
		}

		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		if _, err := w.Write(a.Body); err != nil {
			logger.FromContext(r.Context()).Debug("client went away", slog.Any("error", err))
		}
	}
}

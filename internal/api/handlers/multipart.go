package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ilkin0/mimedemo/internal/logger"
	"github.com/ilkin0/mimedemo/internal/service"
)

// readFileParts streams a multipart body capped at maxBytes and buffers every
// part named field in submission order. A part counts as a file whatever its
// declared filename, including none. With limit > 0 reading stops after that
// many matches.
//
// A part whose body cannot be read is still returned, carrying the read error,
// and ends the stream. The status is only meaningful when err is non-nil.
func readFileParts(w http.ResponseWriter, r *http.Request, field string, maxBytes int64, limit int) ([]service.Part, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mr, err := r.MultipartReader()
	if err != nil {
		status, err := classifyMultipartError(err, maxBytes)
		return nil, status, err
	}

	var parts []service.Part
	for limit <= 0 || len(parts) < limit {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(parts) == 0 || isTooLarge(err) {
				status, err := classifyMultipartError(err, maxBytes)
				return nil, status, err
			}
			logger.FromContext(r.Context()).Warn("multipart stream ended early",
				slog.Int("parts", len(parts)),
				slog.Any("error", err),
			)
			break
		}

		if p.FormName() != field {
			p.Close()
			continue
		}

		data, readErr := io.ReadAll(p)
		p.Close()
		if readErr != nil && isTooLarge(readErr) {
			status, err := classifyMultipartError(readErr, maxBytes)
			return nil, status, err
		}

		part := service.Part{
			Filename:    p.FileName(),
			ContentType: p.Header.Get("Content-Type"),
			Header:      p.Header,
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(data)), nil
			},
		}
		if readErr != nil {
			part.Open = func() (io.ReadCloser, error) { return nil, readErr }
			parts = append(parts, part)
			break
		}
		parts = append(parts, part)
	}

	return parts, http.StatusOK, nil
}

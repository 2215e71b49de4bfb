package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ilkin0/mimedemo/internal/apperrors"
)

func statusFor(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeRead:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeStorage, apperrors.ErrorTypeProcessing, apperrors.ErrorTypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

var (
	errTooLarge     = errors.New("request body too large")
	errNotMultipart = errors.New("request must be multipart/form-data")
)

// parseMultipart caps the body at maxBytes and parses it, keeping up to
// memory bytes of file data in RAM. The returned status is only meaningful
// when err is non-nil.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes, memory int64) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(memory); err != nil {
		return classifyMultipartError(err, maxBytes)
	}
	return http.StatusOK, nil
}

func classifyMultipartError(err error, maxBytes int64) (int, error) {
	if isTooLarge(err) {
		return http.StatusRequestEntityTooLarge, fmt.Errorf("%w: limit is %d bytes", errTooLarge, maxBytes)
	}
	if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
		return http.StatusBadRequest, errNotMultipart
	}
	return http.StatusBadRequest, fmt.Errorf("invalid multipart body: %w", err)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ilkin0/mimedemo/internal/api/types"
	"github.com/ilkin0/mimedemo/internal/logger"
	"github.com/ilkin0/mimedemo/internal/service"
	"github.com/ilkin0/mimedemo/internal/utils"
)

const (
	singleFileField   = "file"
	multipleFileField = "files"
)

type UploadHandler struct {
	uploadService *service.UploadService
	maxBytes      int64
	now           func() time.Time
}

func NewUploadHandler(uploadService *service.UploadService, maxBytes int64, now func() time.Time) *UploadHandler {
	if now == nil {
		now = time.Now
	}
	return &UploadHandler{
		uploadService: uploadService,
		maxBytes:      maxBytes,
		now:           now,
	}
}

func (h *UploadHandler) UploadSingle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	files, status, err := readFileParts(w, r, singleFileField, h.maxBytes, 1)
	if err != nil {
		log.Warn("rejected upload", slog.Any("error", err))
		utils.Error(w, status, "Upload failed: "+err.Error())
		return
	}
	if len(files) == 0 {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("Upload failed: missing form field %q", singleFileField))
		return
	}
	part := files[0]

	res, err := h.uploadService.UploadSingle(r.Context(), part)
	if err != nil {
		status := statusFor(err)
		log.Log(r.Context(), levelFor(status), "upload failed",
			slog.String("filename", part.Filename),
			slog.Int("status", status),
			slog.Any("error", err),
		)
		utils.Error(w, status, "Upload failed: "+err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, types.SingleUploadResponse{
		Message:   "File uploaded successfully",
		Filename:  res.Filename,
		MimeType:  res.MimeType,
		FileSize:  res.FileSize,
		SavedPath: res.SavedPath,
		Timestamp: h.now().Format(time.RFC3339),
		Headers:   flattenHeader(part.Header),
	})
}

func (h *UploadHandler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	parts, status, err := readFileParts(w, r, multipleFileField, h.maxBytes, 0)
	if err != nil {
		log.Warn("rejected upload", slog.Any("error", err))
		utils.Error(w, status, "Upload failed: "+err.Error())
		return
	}
	if len(parts) == 0 {
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("Upload failed: missing form field %q", multipleFileField))
		return
	}

	summary := h.uploadService.UploadBatch(r.Context(), parts)
	log.Info("batch upload processed",
		slog.Int("total", summary.Total),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
	)

	utils.JSON(w, http.StatusOK, types.MultipleUploadResponse{
		Message:           fmt.Sprintf("Processed %d files", summary.Total),
		SuccessfulUploads: summary.Succeeded,
		FailedUploads:     summary.Failed,
		Results:           summary.Results,
		Timestamp:         h.now().Format(time.RFC3339),
	})
}

func flattenHeader(h map[string][]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return out
}

func levelFor(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelWarn
}

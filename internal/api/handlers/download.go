package handlers

import (
	"cmp"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ilkin0/mimedemo/internal/api/types"
	"github.com/ilkin0/mimedemo/internal/apperrors"
	"github.com/ilkin0/mimedemo/internal/crypto"
	"github.com/ilkin0/mimedemo/internal/logger"
	"github.com/ilkin0/mimedemo/internal/repository"
	"github.com/ilkin0/mimedemo/internal/sniff"
	"github.com/ilkin0/mimedemo/internal/storage"
	"github.com/ilkin0/mimedemo/internal/utils"
)

type UploadsHandler struct {
	store   storage.Storage
	records repository.UploadRepository
}

func NewUploadsHandler(store storage.Storage, records repository.UploadRepository) *UploadsHandler {
	return &UploadsHandler{store: store, records: records}
}

// Download streams a persisted upload back. The Content-Type is the sniffed
// type recorded at upload time, or re-sniffed when the backend kept none.
func (h *UploadsHandler) Download(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	key := chi.URLParam(r, "key")

	if !storage.ValidKey(key) {
		log.Warn("invalid storage key", slog.String("key", key))
		utils.Error(w, http.StatusBadRequest, "Invalid upload key")
		return
	}

	body, info, err := h.store.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = apperrors.WrapNotFoundError(err, "upload")
		} else {
			err = apperrors.WrapStorageError(err, "failed to open upload")
		}
		status := statusFor(err)
		if status == http.StatusNotFound {
			utils.Error(w, status, "Upload not found")
			return
		}
		log.Error("failed to open upload",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		utils.Error(w, status, "Failed to read upload")
		return
	}
	defer body.Close()

	var src io.Reader = body
	contentType := info.ContentType
	if contentType == "" {
		contentType, src, err = sniff.DetectReader(body)
		if err != nil {
			log.Error("failed to sniff upload",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			utils.Error(w, http.StatusInternalServerError, "Failed to read upload")
			return
		}
	}

	name, sum := h.describe(r, key, info)
	if sum != "" {
		w.Header().Set("ETag", crypto.ETag(sum))
		if crypto.MatchesETag(r.Header.Get("If-None-Match"), sum) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	if name != "" {
		if v := mime.FormatMediaType("inline", map[string]string{"filename": name}); v != "" {
			w.Header().Set("Content-Disposition", v)
		}
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if info.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	if _, err := io.Copy(w, src); err != nil {
		log.Error("failed to stream upload",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// describe returns the original filename and checksum of an upload, from
// object metadata when the backend keeps it and from the record otherwise.
func (h *UploadsHandler) describe(r *http.Request, key string, info storage.ObjectInfo) (name, sum string) {
	name = info.Metadata[storage.MetaOriginalFilename]
	sum = info.Metadata[storage.MetaSHA256]
	if (name == "" || sum == "") && h.records != nil {
		if rec, err := h.records.GetByKey(r.Context(), key); err == nil {
			name = cmp.Or(name, rec.OriginalFilename)
			sum = cmp.Or(sum, rec.SHA256)
		}
	}
	return name, sum
}

// List returns recent upload records, newest first.
func (h *UploadsHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	limit := repository.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = repository.ClampLimit(n)
	}

	recs, err := h.records.List(r.Context(), limit)
	if err != nil {
		log.Error("failed to list uploads", slog.String("error", err.Error()))
		utils.Error(w, http.StatusInternalServerError, "Failed to list uploads")
		return
	}
	if recs == nil {
		recs = []repository.UploadRecord{}
	}

	utils.Ok(w, types.UploadListResponse{
		Count:   len(recs),
		Limit:   limit,
		Uploads: recs,
	})
}

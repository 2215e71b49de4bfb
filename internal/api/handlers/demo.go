package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/ilkin0/mimedemo/internal/api/types"
	"github.com/ilkin0/mimedemo/internal/crypto"
	"github.com/ilkin0/mimedemo/internal/logger"
	"github.com/ilkin0/mimedemo/internal/middleware"
	"github.com/ilkin0/mimedemo/internal/sniff"
	"github.com/ilkin0/mimedemo/internal/utils"
)

type DemoHandler struct {
	maxBytes        int64
	multipartMemory int64
	now             func() time.Time
}

func NewDemoHandler(maxBytes, multipartMemory int64, now func() time.Time) *DemoHandler {
	if now == nil {
		now = time.Now
	}
	return &DemoHandler{maxBytes: maxBytes, multipartMemory: multipartMemory, now: now}
}

// FormData echoes a multipart request back to the caller. Files are sniffed
// but never persisted.
func (h *DemoHandler) FormData(w http.ResponseWriter, r *http.Request) {
	h.echo(w, r, "Form data received")
}

// MultipleFiles is FormData for clients sending several file parts at once.
func (h *DemoHandler) MultipleFiles(w http.ResponseWriter, r *http.Request) {
	h.echo(w, r, "Multiple files received via multipart")
}

func (h *DemoHandler) echo(w http.ResponseWriter, r *http.Request, message string) {
	log := logger.FromContext(r.Context())

	if status, err := parseMultipart(w, r, h.maxBytes, h.multipartMemory); err != nil {
		log.Warn("rejected form data", slog.Any("error", err))
		utils.Error(w, status, err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	fields := r.MultipartForm.Value
	if fields == nil {
		fields = map[string][]string{}
	}

	names := make([]string, 0, len(r.MultipartForm.File))
	for name := range r.MultipartForm.File {
		names = append(names, name)
	}
	sort.Strings(names)

	files := []types.FormFile{}
	for _, name := range names {
		for _, fh := range r.MultipartForm.File[name] {
			ff, err := describePart(name, fh)
			if err != nil {
				log.Warn("failed to read form file", slog.String("filename", fh.Filename), slog.Any("error", err))
				utils.Error(w, http.StatusBadRequest, "failed to read "+fh.Filename)
				return
			}
			files = append(files, ff)
		}
	}

	utils.JSON(w, http.StatusOK, types.FormDataResponse{
		Message:   message,
		Fields:    fields,
		Files:     files,
		Timestamp: h.now().Format(time.RFC3339),
	})
}

func describePart(field string, fh *multipart.FileHeader) (types.FormFile, error) {
	f, err := fh.Open()
	if err != nil {
		return types.FormFile{}, err
	}
	defer f.Close()

	head := make([]byte, sniff.ReadLimit)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return types.FormFile{}, err
	}
	head = head[:n]

	sum, size, err := crypto.HashReader(io.MultiReader(bytes.NewReader(head), f))
	if err != nil {
		return types.FormFile{}, err
	}

	return types.FormFile{
		Field:             field,
		Filename:          fh.Filename,
		DeclaredMimeType:  fh.Header.Get("Content-Type"),
		DetectedMimeType:  sniff.Detect(head),
		DetectedExtension: sniff.Extension(head),
		FileSize:          size,
		SHA256:            sum,
	}, nil
}

// HeadersDemo returns custom response headers that the CORS layer exposes to
// browser scripts.
func (h *DemoHandler) HeadersDemo(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	w.Header().Set("X-Custom-Demo", "mimedemo")
	w.Header().Set("X-Endpoint-Name", "headers-demo")
	w.Header().Set("X-Server-Time", now.UTC().Format(time.RFC3339))

	reqHeaders := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		reqHeaders[k] = strings.Join(v, ", ")
	}

	utils.JSON(w, http.StatusOK, types.HeadersDemoResponse{
		Message:        "Check the response headers",
		ExposedHeaders: middleware.ExposedHeaders,
		RequestHeaders: reqHeaders,
		Timestamp:      now.Format(time.RFC3339),
	})
}

func Health(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package types

import (
	"encoding/json"

	"github.com/ilkin0/mimedemo/internal/repository"
)

// FileResult is the outcome of one uploaded item. Exactly one of the success
// fields or Error is meaningful.
type FileResult struct {
	Filename  string
	MimeType  string
	FileSize  int64
	SavedPath string
	// StorageKey is internal; clients see SavedPath.
	StorageKey string
	Error      string
}

func (r FileResult) Failed() bool {
	return r.Error != ""
}

type fileSuccess struct {
	Filename  string `json:"filename"`
	MimeType  string `json:"mime_type"`
	FileSize  int64  `json:"file_size"`
	SavedPath string `json:"saved_path"`
}

type fileFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

func (r FileResult) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(fileFailure{Filename: r.Filename, Error: r.Error})
	}
	return json.Marshal(fileSuccess{
		Filename:  r.Filename,
		MimeType:  r.MimeType,
		FileSize:  r.FileSize,
		SavedPath: r.SavedPath,
	})
}

// BatchSummary always satisfies Succeeded+Failed == Total == len(Results),
// with Results in submission order.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []FileResult
}

type SingleUploadResponse struct {
	Message   string            `json:"message"`
	Filename  string            `json:"filename"`
	MimeType  string            `json:"mime_type"`
	FileSize  int64             `json:"file_size"`
	SavedPath string            `json:"saved_path"`
	Timestamp string            `json:"timestamp"`
	Headers   map[string]string `json:"headers"`
}

type MultipleUploadResponse struct {
	Message           string       `json:"message"`
	SuccessfulUploads int          `json:"successful_uploads"`
	FailedUploads     int          `json:"failed_uploads"`
	Results           []FileResult `json:"results"`
	Timestamp         string       `json:"timestamp"`
}

type UploadListResponse struct {
	Count   int                       `json:"count"`
	Limit   int                       `json:"limit"`
	Uploads []repository.UploadRecord `json:"uploads"`
}

package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/xuri/excelize/v2"
)

const MediaTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type zipManifest struct {
	Message  string `json:"message"`
	Created  string `json:"created"`
	MimeType string `json:"mime_type"`
}

func Zip(now time.Time) (Artifact, error) {
	manifest, err := json.MarshalIndent(zipManifest{
		Message:  "JSON file inside ZIP",
		Created:  now.Format(isoLayout),
		MimeType: "application/zip",
	}, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("marshal zip manifest: %w", err)
	}

	entries := []struct {
		name string
		body []byte
	}{
		{"demo.txt", []byte("This is a text file inside ZIP\nCreated: " + now.Format(isoLayout))},
		{"data.json", manifest},
		{"page.html", []byte("<html><body><h1>HTML file in ZIP</h1><p>Created with mimedemo</p></body></html>")},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			return Artifact{}, fmt.Errorf("create zip entry %s: %w", e.name, err)
		}
		if _, err := w.Write(e.body); err != nil {
			return Artifact{}, fmt.Errorf("write zip entry %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return Artifact{}, fmt.Errorf("close zip: %w", err)
	}

	return Artifact{Body: buf.Bytes(), MediaType: "application/zip", Filename: "demo.zip"}, nil
}

func Gzip(now time.Time) (Artifact, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return Artifact{}, fmt.Errorf("create gzip writer: %w", err)
	}
	zw.Name = "demo.txt"
	zw.ModTime = now

	if _, err := fmt.Fprintf(zw, "This is a gzip-compressed text file\nCreated: %s\n", now.Format(isoLayout)); err != nil {
		return Artifact{}, fmt.Errorf("write gzip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return Artifact{}, fmt.Errorf("close gzip: %w", err)
	}

	return Artifact{Body: buf.Bytes(), MediaType: "application/gzip", Filename: "demo.txt.gz"}, nil
}

const xlsxSheet = "Sheet1"

func XLSX(now time.Time) (Artifact, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(peopleHeader))
	for i, h := range peopleHeader {
		header[i] = h
	}
	rows := [][]any{header}
	for _, p := range people {
		rows = append(rows, []any{p.Name, p.Age, p.City, p.Country, p.Email})
	}
	rows = append(rows, []any{"Generated", now.Format(shortLayout)})

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return Artifact{}, fmt.Errorf("xlsx cell name: %w", err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return Artifact{}, fmt.Errorf("xlsx row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Artifact{}, fmt.Errorf("write xlsx: %w", err)
	}
	return Artifact{Body: buf.Bytes(), MediaType: MediaTypeXLSX, Filename: "demo.xlsx"}, nil
}

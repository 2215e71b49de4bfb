// Package sniff determines media types from content alone.
//
// Nothing here accepts a filename or a client-declared Content-Type: the
// result is derived from the leading bytes of the payload only.
package sniff

import (
	"bufio"
	"io"
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// ReadLimit is the number of leading bytes inspected.
	ReadLimit = 3072

	Empty   = "application/x-empty"
	Unknown = "application/octet-stream"
)

func init() {
	mimetype.SetLimit(ReadLimit)
}

// Detect returns the bare media type (no parameters) of data.
func Detect(data []byte) string {
	if len(data) == 0 {
		return Empty
	}
	return bare(mimetype.Detect(data).String())
}

// DetectReader sniffs the head of r and returns the media type together with
// a reader that still yields the full, unconsumed stream.
func DetectReader(r io.Reader) (string, io.Reader, error) {
	br := bufio.NewReaderSize(r, ReadLimit)
	head, err := br.Peek(ReadLimit)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", nil, err
	}
	return Detect(head), br, nil
}

// Extension returns the conventional extension, with leading dot, for the
// media type sniffed from data, or "" if none is known.
func Extension(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return mimetype.Detect(data).Extension()
}

func bare(mediaType string) string {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil || mt == "" {
		return Unknown
	}
	return mt
}

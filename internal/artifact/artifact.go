// Package artifact builds the canned and generated demo payloads served by the
// /api/{type}/{subtype} routes.
//
// Every generator is a pure function of the supplied clock reading; the
// timestamp is only ever used for human-readable text inside the payload.
package artifact

import (
	"strings"
	"time"
)

type Artifact struct {
	Body      []byte
	MediaType string
	// Filename, when set, is offered to the client as an attachment name.
	Filename string
}

type Generator func(now time.Time) (Artifact, error)

type Entry struct {
	MediaType   string
	Description string
	Generate    Generator
}

// Path is the route the entry is served under.
func (e Entry) Path() string {
	return "/api/" + e.MediaType
}

// Category is the top-level media type, used to group the endpoint catalog.
func (e Entry) Category() string {
	category, _, _ := strings.Cut(e.MediaType, "/")
	return category
}

// Registry lists every artifact route in catalog order.
var Registry = []Entry{
	{"text/plain", "Plain text content", PlainText},
	{"text/html", "HTML content", HTML},
	{"text/css", "CSS stylesheet", CSS},
	{"text/javascript", "JavaScript code", JavaScript},
	{"text/csv", "CSV data download", CSV},

	{"application/json", "JSON data", JSON},
	{"application/xml", "XML data", XML},
	{"application/yaml", "YAML document", YAML},
	{"application/toml", "TOML document", TOML},
	{"application/pdf", "PDF document download", PDF},
	{"application/zip", "ZIP archive download", Zip},
	{"application/gzip", "Gzip-compressed text download", Gzip},
	{MediaTypeXLSX, "Excel spreadsheet download", XLSX},
	{"application/octet-stream", "Binary data download", OctetStream},

	{"image/jpeg", "JPEG image download", JPEG},
	{"image/png", "PNG image download", PNG},
	{"image/gif", "Animated GIF download", GIF},
	{"image/svg+xml", "SVG vector image", SVG},

	{"video/mp4", "MP4 video placeholder", MP4},
	{"video/webm", "WebM video placeholder", WebM},

	{"message/rfc822", "Email message", RFC822},
	{"message/http", "Raw HTTP response message", HTTPMessage},
}

const (
	isoLayout   = "2006-01-02T15:04:05.000000"
	shortLayout = "2006-01-02 15:04:05"
)

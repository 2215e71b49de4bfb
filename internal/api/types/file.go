package types

// FormFile describes one file part of an echoed multipart request. The
// declared type is whatever the client sent; the detected type comes from
// the bytes.
type FormFile struct {
	Field             string `json:"field"`
	Filename          string `json:"filename"`
	DeclaredMimeType  string `json:"declared_mime_type"`
	DetectedMimeType  string `json:"detected_mime_type"`
	DetectedExtension string `json:"detected_extension,omitempty"`
	FileSize          int64  `json:"file_size"`
	SHA256            string `json:"sha256"`
}

type FormDataResponse struct {
	Message   string              `json:"message"`
	Fields    map[string][]string `json:"fields"`
	Files     []FormFile          `json:"files"`
	Timestamp string              `json:"timestamp"`
}

type HeadersDemoResponse struct {
	Message        string            `json:"message"`
	ExposedHeaders []string          `json:"exposed_headers"`
	RequestHeaders map[string]string `json:"request_headers"`
	Timestamp      string            `json:"timestamp"`
}

type EndpointInfo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
	MimeType    string `json:"mime_type,omitempty"`
}

type EndpointCatalog struct {
	Title       string                    `json:"title"`
	Version     string                    `json:"version"`
	Server      string                    `json:"server"`
	TotalRoutes int                       `json:"total_routes"`
	Endpoints   map[string][]EndpointInfo `json:"endpoints"`
	Usage       map[string]string         `json:"usage"`
	Features    []string                  `json:"features"`
}

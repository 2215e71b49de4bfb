package routes

import (
	"github.com/ilkin0/mimedemo/internal/api/types"
)

const (
	catalogTitle   = "MIME Types Demo API"
	catalogVersion = "1.0.0"
	catalogServer  = "mimedemo (Go net/http + chi)"
)

func buildCatalog(table []Route) types.EndpointCatalog {
	endpoints := make(map[string][]types.EndpointInfo)
	for _, rt := range table {
		endpoints[rt.Category] = append(endpoints[rt.Category], types.EndpointInfo{
			Method:      rt.Method,
			Path:        rt.Path,
			Description: rt.Description,
			MimeType:    rt.MimeType,
		})
	}

	return types.EndpointCatalog{
		Title:       catalogTitle,
		Version:     catalogVersion,
		Server:      catalogServer,
		TotalRoutes: len(table),
		Endpoints:   endpoints,
		Usage: map[string]string{
			"view":     "curl -i http://localhost:8000/api/text/plain",
			"download": "curl -OJ http://localhost:8000/api/application/pdf",
			"upload":   "curl -F file=@photo.png http://localhost:8000/api/upload/single",
			"batch":    "curl -F files=@a.png -F files=@b.pdf http://localhost:8000/api/upload/multiple",
			"inspect":  "curl -F name=demo -F upload=@a.png http://localhost:8000/api/multipart/form-data",
		},
		Features: []string{
			"Content-Type headers set exactly per endpoint",
			"Downloads offered with Content-Disposition attachment names",
			"Upload type detection from file content, never the filename",
			"Per-file results for batch uploads",
			"CORS with exposed custom headers",
			"Per-client rate limiting on uploads",
			"Prometheus metrics and OpenTelemetry tracing",
		},
	}
}

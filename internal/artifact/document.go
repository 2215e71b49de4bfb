package artifact

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const serverName = "mimedemo"

type demoUser struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Age    int    `json:"age" yaml:"age" toml:"age"`
	Active bool   `json:"active" yaml:"active" toml:"active"`
}

type demoStatistics struct {
	TotalUsers     int     `json:"total_users" yaml:"total_users" toml:"total_users"`
	ActiveUsers    int     `json:"active_users" yaml:"active_users" toml:"active_users"`
	CompletionRate float64 `json:"completion_rate" yaml:"completion_rate" toml:"completion_rate"`
}

type demoData struct {
	Users      []demoUser     `json:"users" yaml:"users" toml:"users"`
	Statistics demoStatistics `json:"statistics" yaml:"statistics" toml:"statistics"`
}

type demoDocument struct {
	Message   string   `json:"message" yaml:"message" toml:"message"`
	Timestamp string   `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	Server    string   `json:"server" yaml:"server" toml:"server"`
	Version   string   `json:"version" yaml:"version" toml:"version"`
	MimeType  string   `json:"mime_type" yaml:"mime_type" toml:"mime_type"`
	Data      demoData `json:"data" yaml:"data" toml:"data"`
}

func newDemoDocument(now time.Time, format, mediaType string) demoDocument {
	return demoDocument{
		Message:   fmt.Sprintf("This is %s content", format),
		Timestamp: now.Format(isoLayout),
		Server:    serverName,
		Version:   "1.0.0",
		MimeType:  mediaType,
		Data: demoData{
			Users: []demoUser{
				{Name: "Alice", Age: 30, Active: true},
				{Name: "Bob", Age: 25, Active: false},
				{Name: "Charlie", Age: 35, Active: true},
			},
			Statistics: demoStatistics{
				TotalUsers:     3,
				ActiveUsers:    2,
				CompletionRate: 66.67,
			},
		},
	}
}

func JSON(now time.Time) (Artifact, error) {
	body, err := json.MarshalIndent(newDemoDocument(now, "JSON", "application/json"), "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("marshal json: %w", err)
	}
	return Artifact{Body: body, MediaType: "application/json"}, nil
}

type xmlMessage struct {
	XMLName  xml.Name `xml:"message"`
	Title    string   `xml:"title"`
	Content  string   `xml:"content"`
	Metadata struct {
		Timestamp string `xml:"timestamp"`
		Server    string `xml:"server"`
	} `xml:"metadata"`
}

func XML(now time.Time) (Artifact, error) {
	msg := xmlMessage{
		Title:   "XML MIME Demo",
		Content: "This is XML content served with application/xml",
	}
	msg.Metadata.Timestamp = now.Format(isoLayout)
	msg.Metadata.Server = serverName

	body, err := xml.MarshalIndent(msg, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("marshal xml: %w", err)
	}
	return Artifact{
		Body:      append([]byte(xml.Header), body...),
		MediaType: "application/xml",
	}, nil
}

func YAML(now time.Time) (Artifact, error) {
	body, err := yaml.Marshal(newDemoDocument(now, "YAML", "application/yaml"))
	if err != nil {
		return Artifact{}, fmt.Errorf("marshal yaml: %w", err)
	}
	return Artifact{Body: body, MediaType: "application/yaml"}, nil
}

func TOML(now time.Time) (Artifact, error) {
	body, err := toml.Marshal(newDemoDocument(now, "TOML", "application/toml"))
	if err != nil {
		return Artifact{}, fmt.Errorf("marshal toml: %w", err)
	}
	return Artifact{Body: body, MediaType: "application/toml"}, nil
}

func PDF(now time.Time) (Artifact, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetCreationDate(now)
	pdf.SetTitle("PDF MIME Demo", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "PDF MIME Demo")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "This is a PDF file served with application/pdf MIME type.")
	pdf.Ln(8)
	pdf.Cell(0, 8, "Timestamp: "+now.Format(isoLayout))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, fmt.Errorf("render pdf: %w", err)
	}
	return Artifact{Body: buf.Bytes(), MediaType: "application/pdf", Filename: "demo.pdf"}, nil
}

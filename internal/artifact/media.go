package artifact

import (
	"fmt"
	"net/http"
	"time"
)

var (
	// ftyp box declaring the isom brand; enough for sniffers, not playable.
	mp4Header = []byte{
		0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
	}
	// EBML magic.
	webmHeader = []byte{0x1A, 0x45, 0xDF, 0xA3, 0x00, 0x00, 0x00, 0x00}
	pngMagic   = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
)

func concat(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func MP4(time.Time) (Artifact, error) {
	return Artifact{
		Body:      concat(mp4Header, []byte("MP4 placeholder - mimedemo")),
		MediaType: "video/mp4",
		Filename:  "demo.mp4",
	}, nil
}

func WebM(time.Time) (Artifact, error) {
	return Artifact{
		Body:      concat(webmHeader, []byte("WebM placeholder - mimedemo")),
		MediaType: "video/webm",
		Filename:  "demo.webm",
	}, nil
}

// OctetStream deliberately starts with a PNG signature: the declared type is
// still application/octet-stream.
func OctetStream(now time.Time) (Artifact, error) {
	return Artifact{
		Body:      concat(pngMagic, []byte("mimedemo binary data "+now.Format(isoLayout))),
		MediaType: "application/octet-stream",
		Filename:  "binary.bin",
	}, nil
}

func RFC822(now time.Time) (Artifact, error) {
	body := fmt.Sprintf("From: sender@example.com\r\n"+
		"To: receiver@example.com\r\n"+
		"Subject: MIME Demo Email\r\n"+
		"Date: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n"+
		"This is a sample email message served with message/rfc822 MIME type.\r\n"+
		"It demonstrates the email message format.\r\n",
		now.UTC().Format(time.RFC1123Z))

	return Artifact{Body: []byte(body), MediaType: "message/rfc822"}, nil
}

func HTTPMessage(now time.Time) (Artifact, error) {
	page := "<html><body><h1>This is an HTTP message</h1></body></html>"
	body := fmt.Sprintf("HTTP/1.1 200 OK\r\n"+
		"Content-Type: text/html\r\n"+
		"Content-Length: %d\r\n"+
		"Date: %s\r\n"+
		"Server: mimedemo/1.0\r\n"+
		"\r\n"+
		"%s",
		len(page), now.UTC().Format(http.TimeFormat), page)

	return Artifact{Body: []byte(body), MediaType: "message/http"}, nil
}

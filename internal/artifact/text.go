package artifact

import (
	"bytes"
	"encoding/csv"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	texttemplate "text/template"
	"time"
)

func PlainText(time.Time) (Artifact, error) {
	return Artifact{
		Body:      []byte("This is plain text content served with text/plain MIME type"),
		MediaType: "text/plain",
	}, nil
}

var htmlPage = htmltemplate.Must(htmltemplate.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>HTML MIME Demo</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .container { border: 2px solid #007bff; padding: 20px; border-radius: 10px; }
        h1 { color: #007bff; }
    </style>
</head>
<body>
    <div class="container">
        <h1>This is HTML content</h1>
        <p>Served with text/html MIME type</p>
        <p>Timestamp: {{.}}</p>
    </div>
</body>
</html>
`))

func HTML(now time.Time) (Artifact, error) {
	var buf bytes.Buffer
	if err := htmlPage.Execute(&buf, now.Format(isoLayout)); err != nil {
		return Artifact{}, fmt.Errorf("render html: %w", err)
	}
	return Artifact{Body: buf.Bytes(), MediaType: "text/html"}, nil
}

const stylesheet = `body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    margin: 0;
    padding: 20px;
    min-height: 100vh;
}
.demo-container {
    background: white;
    color: #333;
    border-radius: 15px;
    padding: 30px;
    box-shadow: 0 10px 30px rgba(0,0,0,0.2);
    max-width: 800px;
    margin: 50px auto;
}
h1 {
    color: #4a5568;
    border-bottom: 3px solid #667eea;
    padding-bottom: 10px;
}
`

func CSS(time.Time) (Artifact, error) {
	return Artifact{Body: []byte(stylesheet), MediaType: "text/css"}, nil
}

var script = texttemplate.Must(texttemplate.New("script").Parse(`// MIME Demo JavaScript
console.log('This is JavaScript content served as text/javascript');

function showMimeDemo() {
    const demo = document.createElement('div');
    demo.innerHTML = ` + "`" + `
        <div style="position: fixed; top: 20px; right: 20px; background: #4CAF50; color: white; padding: 15px; border-radius: 8px;">
            <h3>JavaScript Executed Successfully!</h3>
            <p>Timestamp: {{.}}</p>
            <p>MIME Type: text/javascript</p>
        </div>
    ` + "`" + `;
    document.body.appendChild(demo);

    setTimeout(() => {
        demo.remove();
    }, 5000);
}

showMimeDemo();
`))

func JavaScript(now time.Time) (Artifact, error) {
	var buf bytes.Buffer
	if err := script.Execute(&buf, now.Format(isoLayout)); err != nil {
		return Artifact{}, fmt.Errorf("render javascript: %w", err)
	}
	return Artifact{Body: buf.Bytes(), MediaType: "text/javascript"}, nil
}

type person struct {
	Name    string
	Age     int
	City    string
	Country string
	Email   string
}

var peopleHeader = []string{"Name", "Age", "City", "Country", "Email"}

var people = []person{
	{"John Doe", 30, "New York", "USA", "john@example.com"},
	{"Jane Smith", 25, "London", "UK", "jane@example.com"},
	{"Bob Johnson", 35, "Paris", "France", "bob@example.com"},
	{"Alice Brown", 28, "Tokyo", "Japan", "alice@example.com"},
}

func CSV(time.Time) (Artifact, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(peopleHeader); err != nil {
		return Artifact{}, fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range people {
		if err := w.Write([]string{p.Name, strconv.Itoa(p.Age), p.City, p.Country, p.Email}); err != nil {
			return Artifact{}, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Artifact{}, fmt.Errorf("flush csv: %w", err)
	}

	return Artifact{Body: buf.Bytes(), MediaType: "text/csv", Filename: "demo.csv"}, nil
}

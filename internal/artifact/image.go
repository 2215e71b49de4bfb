package artifact

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	texttemplate "text/template"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	coral     = color.RGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}
	turquoise = color.RGBA{R: 0x4E, G: 0xCD, B: 0xC4, A: 0xFF}
	sky       = color.RGBA{R: 0x45, G: 0xB7, B: 0xD1, A: 0xFF}
	sage      = color.RGBA{R: 0x96, G: 0xCE, B: 0xB4, A: 0xFF}
	sand      = color.RGBA{R: 0xFF, G: 0xEA, B: 0xA7, A: 0xFF}
)

// drawLines writes white text starting at (x, y), one line every 30px.
func drawLines(dst draw.Image, x, y int, lines ...string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		d.Dot = fixed.P(x, y+i*30)
		d.DrawString(line)
	}
}

func filled(w, h int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

func JPEG(now time.Time) (Artifact, error) {
	img := filled(400, 300, coral)
	drawLines(img, 50, 50,
		"JPEG Image",
		"MIME Type: image/jpeg",
		"Created: "+now.Format(shortLayout),
	)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return Artifact{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return Artifact{Body: buf.Bytes(), MediaType: "image/jpeg", Filename: "demo.jpg"}, nil
}

func PNG(now time.Time) (Artifact, error) {
	img := filled(400, 300, turquoise)
	drawLines(img, 50, 50,
		"PNG Image",
		"MIME Type: image/png",
		"mimedemo",
		"Created: "+now.Format(shortLayout),
	)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Artifact{}, fmt.Errorf("encode png: %w", err)
	}
	return Artifact{Body: buf.Bytes(), MediaType: "image/png", Filename: "demo.png"}, nil
}

const (
	gifSize       = 200
	gifFrameDelay = 50 // hundredths of a second
)

func GIF(time.Time) (Artifact, error) {
	backgrounds := []color.Color{coral, turquoise, sky, sage, sand}

	anim := &gif.GIF{LoopCount: 0}
	for i, bg := range backgrounds {
		frame := image.NewPaletted(image.Rect(0, 0, gifSize, gifSize), color.Palette{bg, color.White})
		drawLines(frame, 50, 80, fmt.Sprintf("Frame %d", i+1), "GIF Demo")

		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, gifFrameDelay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return Artifact{}, fmt.Errorf("encode gif: %w", err)
	}
	return Artifact{Body: buf.Bytes(), MediaType: "image/gif", Filename: "demo.gif"}, nil
}

var svgImage = texttemplate.Must(texttemplate.New("svg").Parse(`<svg width="400" height="300" xmlns="http://www.w3.org/2000/svg">
    <defs>
        <linearGradient id="grad1" x1="0%" y1="0%" x2="100%" y2="100%">
            <stop offset="0%" style="stop-color:#FF6B6B;stop-opacity:1" />
            <stop offset="100%" style="stop-color:#4ECDC4;stop-opacity:1" />
        </linearGradient>
    </defs>
    <rect width="400" height="300" fill="url(#grad1)" />
    <text x="200" y="80" font-family="Arial, sans-serif" font-size="24" font-weight="bold" fill="white" text-anchor="middle">SVG Image</text>
    <text x="200" y="120" font-family="Arial, sans-serif" font-size="16" fill="white" text-anchor="middle">MIME Type: image/svg+xml</text>
    <text x="200" y="150" font-family="Arial, sans-serif" font-size="14" fill="white" text-anchor="middle">mimedemo</text>
    <text x="200" y="180" font-family="Arial, sans-serif" font-size="12" fill="white" text-anchor="middle">{{.}}</text>
    <circle cx="100" cy="220" r="20" fill="white" opacity="0.8"/>
    <circle cx="200" cy="220" r="20" fill="white" opacity="0.8"/>
    <circle cx="300" cy="220" r="20" fill="white" opacity="0.8"/>
</svg>
`))

func SVG(now time.Time) (Artifact, error) {
	var buf bytes.Buffer
	if err := svgImage.Execute(&buf, now.Format(shortLayout)); err != nil {
		return Artifact{}, fmt.Errorf("render svg: %w", err)
	}
	return Artifact{Body: buf.Bytes(), MediaType: "image/svg+xml"}, nil
}

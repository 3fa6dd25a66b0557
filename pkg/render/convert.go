// Package render provides SVG-to-raster conversion shared by the
// plan-view and adjacency renderers.
package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

const converter = "rsvg-convert"

// ToPDF converts SVG bytes to PDF. Requires librsvg
// (brew install librsvg / apt install librsvg2-bin).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG at the given zoom factor; 2.0 doubles
// the pixel dimensions. Requires librsvg.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func convert(svg []byte, format string, extra ...string) ([]byte, error) {
	if _, err := exec.LookPath(converter); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	cmd := exec.Command(converter, append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", converter, err, stderr.String())
	}
	return out.Bytes(), nil
}

package ebitenhost

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var faceSource *text.GoTextFaceSource

// loadFace returns a Go Regular face at size, parsing the font once.
func loadFace(size float64) (*text.GoTextFace, error) {
	if faceSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("ebitenhost: failed to parse TTF data: %w", err)
		}
		faceSource = src
	}
	return &text.GoTextFace{Source: faceSource, Size: size}, nil
}

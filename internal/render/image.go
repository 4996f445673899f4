package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	CanvasWidth     = 560
	HeaderHeight    = 20
	LineHeight      = 15
	MaxCanvasHeight = 16384

	originX = 10
	originY = 10
)

// CanvasHeight is the height of the image Image draws for the given number of lines.
func CanvasHeight(lines int) int {
	return HeaderHeight + LineHeight*lines
}

// Image draws text black on white with a 7x13 monospace face. Lines are
// neither wrapped nor scaled, anything wider than the canvas is cut off.
//
// Blank text yields a nil image and no error, there is nothing to deliver.
func Image(text string) (*image.RGBA, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	height := CanvasHeight(len(lines))
	if height > MaxCanvasHeight {
		return nil, &RenderError{
			Lines: len(lines),
			Err:   fmt.Errorf("%w: %dpx > %dpx", ErrCanvasTooLarge, height, MaxCanvasHeight),
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, CanvasWidth, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(originX, originY+face.Ascent+i*LineHeight)
		drawer.DrawString(line)
	}

	return img, nil
}

func EncodePNG(w io.Writer, img image.Image) error {
	err := png.Encode(w, img)
	if err != nil {
		return &RenderError{Err: fmt.Errorf("encode png: %w", err)}
	}
	return nil
}

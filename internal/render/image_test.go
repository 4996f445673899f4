package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"substplan/internal/scrapers/untis"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageSkipsBlankText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n", " \t\n "} {
		img, err := Image(text)
		require.NoError(t, err)
		require.Nil(t, img, "%q", text)
	}
}

func TestImageSize(t *testing.T) {
	text := Text([]untis.Day{
		{Date: "Montag", Rows: []untis.ScheduleRow{row("1", "Hm", "M", "Vertretung", "Kr", "M", "201"), row("2")}},
	})

	img, err := Image(text)
	require.NoError(t, err)
	require.NotNil(t, img)
	require.Equal(t, CanvasWidth, img.Bounds().Dx())
	require.Equal(t, HeaderHeight+4*LineHeight, img.Bounds().Dy())

	// background stays white, glyphs are black
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(0, 0))
	foundInk := false
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y && !foundInk; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.RGBAAt(x, y).R == 0 {
				foundInk = true
				break
			}
		}
	}
	require.True(t, foundInk)
}

func TestImageTooManyLines(t *testing.T) {
	text := strings.Repeat("x\n", MaxCanvasHeight/LineHeight) + "x"

	img, err := Image(text)
	require.Nil(t, img)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	require.True(t, errors.Is(err, ErrCanvasTooLarge))
}

func TestEncodePNG(t *testing.T) {
	img, err := Image("Montag     |1      |")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, img))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, CanvasWidth, CanvasHeight(1)), decoded.Bounds())
}

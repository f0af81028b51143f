package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// Icon dimensions for system tray.
const iconSize = 22

// Pre-generated PNG icons for the tray.
var (
	iconIdlePNG   []byte
	iconActivePNG []byte
)

func init() {
	iconIdlePNG = generateBlockIcon(color.RGBA{128, 128, 128, 255}) // Gray
	iconActivePNG = generateBlockIcon(color.RGBA{76, 175, 80, 255}) // Green
}

// generateBlockIcon creates a simple studded-block icon with the specified color.
func generateBlockIcon(c color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	// Block body dimensions (rectangle)
	bodyLeft := 3
	bodyRight := 18
	bodyTop := 8
	bodyBottom := 19

	// Stud dimensions (two raised squares on top)
	studTop := 4
	studWidth := 4
	studLeftA := 5
	studLeftB := 13

	// Draw the block body (filled rectangle)
	for y := bodyTop; y <= bodyBottom; y++ {
		for x := bodyLeft; x <= bodyRight; x++ {
			img.Set(x, y, c)
		}
	}

	// Draw the studs
	for y := studTop; y <= bodyTop; y++ {
		for x := studLeftA; x < studLeftA+studWidth; x++ {
			img.Set(x, y, c)
		}
		for x := studLeftB; x < studLeftB+studWidth; x++ {
			img.Set(x, y, c)
		}
	}

	// Draw a dark face mark (small square) so states read at a glance
	mark := color.RGBA{40, 40, 40, 255}
	for y := 12; y <= 15; y++ {
		for x := 9; x <= 12; x++ {
			img.Set(x, y, mark)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

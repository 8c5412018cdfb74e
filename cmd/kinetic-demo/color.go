package main

import (
	"image/color"

	"github.com/phanxgames/kinetic"
)

func colorOf(c kinetic.Color) color.NRGBA {
	u8 := func(v float64) uint8 { return uint8(min(max(v, 0), 1) * 255) }
	return color.NRGBA{R: u8(c.R), G: u8(c.G), B: u8(c.B), A: u8(c.A)}
}

package segment

import "image/color"

// jetColor maps an intensity in [0,255] onto the jet scale: low values come
// out blue, mid values green/yellow, high values red.
func jetColor(v uint8) color.RGBA {
	t := float64(v) / 255.0
	return color.RGBA{
		R: jetChannel(1.5 - abs(4*t-3)),
		G: jetChannel(1.5 - abs(4*t-2)),
		B: jetChannel(1.5 - abs(4*t-1)),
		A: 255,
	}
}

func jetChannel(v float64) uint8 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

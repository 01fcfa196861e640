package backend

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Blend mixes accent into base by t (0 keeps base, 1 yields accent) in Lab
// space. Unset colors cannot be blended: an unset accent returns base and an
// unset base returns accent.
func Blend(base, accent Color, t float64) Color {
	if !accent.Valid() {
		return base
	}
	if !base.Valid() {
		return accent
	}
	switch {
	case t <= 0:
		return base
	case t >= 1:
		return accent
	}
	mixed := toColorful(base).BlendLab(toColorful(accent), t).Clamped()
	r, g, b := mixed.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func toColorful(c Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}

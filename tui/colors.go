// SPDX-License-Identifier: MIT
package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// heatLevel maps t onto [0, 1] between ambient and melt.
func heatLevel(t, ambient, melt float64) float64 {
	if melt <= ambient {
		return 0
	}
	u := (t - ambient) / (melt - ambient)
	return math.Max(0, math.Min(1, u))
}

// heatColor returns a black-red-yellow-white ramp colour for t.
func heatColor(t, ambient, melt float64) tcell.Color {
	u := 3 * heatLevel(t, ambient, melt)
	r := channel(u)
	g := channel(u - 1)
	b := channel(u - 2)
	return tcell.NewRGBColor(r, g, b)
}

func channel(x float64) int32 {
	return int32(math.Round(255 * math.Max(0, math.Min(1, x))))
}

// labelColor keeps tile text readable on the ramp.
func labelColor(t, ambient, melt float64) tcell.Color {
	if heatLevel(t, ambient, melt) < 0.45 {
		return tcell.ColorWhite
	}
	return tcell.ColorBlack
}

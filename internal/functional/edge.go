package functional

import (
	"math"

	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// ripleyWeight is the isotropic edge-correction weight for a pair at distance
// r from the reference point p: the reciprocal of the fraction of the circle
// of radius r centered at p that lies inside the rectangular window
// (Ripley 1977; rectangle arcs after Goreaud & Pélissier 1999).
//
// The out-of-window arc is the sum of 2·acos(d/r) over the sides closer than
// r, minus the double-counted corner sectors where two adjacent sides are
// both crossed (d1²+d2² < r²).
func ripleyWeight(p pattern.Point, r float64, w *pattern.Window) float64 {
	if r <= 0 {
		return 1
	}

	left, right, bottom, top := w.SideDistances(p.X, p.Y)

	var out float64
	for _, d := range [4]float64{left, right, bottom, top} {
		if d < r {
			out += 2 * math.Acos(d/r)
		}
	}

	corners := [4][2]float64{
		{left, bottom}, {left, top}, {right, bottom}, {right, top},
	}
	for _, c := range corners {
		if c[0]*c[0]+c[1]*c[1] < r*r {
			out -= math.Acos(c[0]/r) + math.Acos(c[1]/r) - math.Pi/2
		}
	}

	inside := 2*math.Pi - out
	if inside <= 0 {
		// The circle lies almost entirely outside the window; cap the
		// weight rather than divide by a vanishing arc.
		return 2 * math.Pi
	}
	return 2 * math.Pi / inside
}

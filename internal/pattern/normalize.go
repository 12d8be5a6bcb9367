package pattern

import (
	"fmt"
	"strings"
)

// Normalize linearly rescales x and y independently so that the minimum maps
// to 0 and the maximum to 1. It is a pure function of the input extrema.
// Returns ErrDegenerateRange if either axis has zero spread; the caller
// decides the fallback in that case.
func Normalize(points []Point) ([]Point, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	if maxX == minX {
		return nil, fmt.Errorf("%w: x axis", ErrDegenerateRange)
	}
	if maxY == minY {
		return nil, fmt.Errorf("%w: y axis", ErrDegenerateRange)
	}

	spanX := maxX - minX
	spanY := maxY - minY
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{
			X:    (p.X - minX) / spanX,
			Y:    (p.Y - minY) / spanY,
			Type: p.Type,
		}
	}
	return out, nil
}

// StandardizeLabel classifies a raw cell label into the closed type set by
// case-insensitive substring matching. The check order is stroma, then tumor,
// then lymphocyte ("immune" is accepted as a synonym), first match wins.
// Labels like "tumor stroma boundary" therefore classify as Stroma; this
// precedence reproduces long-standing upstream behavior and should not be
// reordered without review.
// Returns ok=false for labels matching none of the types; callers drop the row.
func StandardizeLabel(label string) (CellType, bool) {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "stroma"):
		return Stroma, true
	case strings.Contains(l, "tumor"), strings.Contains(l, "tumour"):
		return Tumor, true
	case strings.Contains(l, "lymphocyte"), strings.Contains(l, "immune"):
		return Lymphocyte, true
	}
	return 0, false
}

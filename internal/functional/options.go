package functional

import (
	"errors"
	"math"
)

// Defaults for the distance grid and estimator parameters.
const (
	DefaultGridLength   = 500
	DefaultRMaxFraction = 0.25
	DefaultSectorStart  = 0
	DefaultSectorEnd    = math.Pi / 2
	DefaultFGridSize    = 32
)

var (
	// ErrGridLength indicates a distance grid with fewer than 2 samples.
	ErrGridLength = errors.New("functional: distance grid length must be at least 2")
	// ErrRMax indicates a non-positive maximum distance.
	ErrRMax = errors.New("functional: r_max must be positive")
	// ErrBandwidth indicates a negative pair-correlation bandwidth.
	ErrBandwidth = errors.New("functional: kernel bandwidth must not be negative")
	// ErrSector indicates malformed sector angles.
	ErrSector = errors.New("functional: sector angles must satisfy 0 <= start < end <= 2π")
	// ErrFGridSize indicates an empty-space test grid below 2×2.
	ErrFGridSize = errors.New("functional: empty-space test grid size must be at least 2")
)

// Options configures the functional engine. The zero value of a field selects
// its default.
type Options struct {
	// GridLength is the number of distance samples (default 500).
	GridLength int
	// RMaxFraction sets r_max as a fraction of the shorter window side
	// (default 1/4, the standard point-process convention).
	RMaxFraction float64
	// SectorStart and SectorEnd bound the directional K sector in radians
	// (default the quarter-plane [0, π/2)).
	SectorStart float64
	SectorEnd   float64
	// Bandwidth is the Epanechnikov kernel bandwidth for the pair
	// correlation function; 0 selects Stoyan's rule 0.15/√λ̂ per pattern.
	Bandwidth float64
	// FGridSize is the side length of the empty-space test-point lattice
	// (default 32).
	FGridSize int
}

// withDefaults fills unset fields
func (o Options) withDefaults() Options {
	if o.GridLength == 0 {
		o.GridLength = DefaultGridLength
	}
	if o.RMaxFraction == 0 {
		o.RMaxFraction = DefaultRMaxFraction
	}
	if o.SectorStart == 0 && o.SectorEnd == 0 {
		o.SectorStart = DefaultSectorStart
		o.SectorEnd = DefaultSectorEnd
	}
	if o.FGridSize == 0 {
		o.FGridSize = DefaultFGridSize
	}
	return o
}

// validate rejects malformed options before any computation starts
func (o Options) validate() error {
	if o.GridLength < 2 {
		return ErrGridLength
	}
	if o.RMaxFraction <= 0 {
		return ErrRMax
	}
	if o.Bandwidth < 0 {
		return ErrBandwidth
	}
	if o.SectorStart < 0 || o.SectorEnd > 2*math.Pi || o.SectorStart >= o.SectorEnd {
		return ErrSector
	}
	if o.FGridSize < 2 {
		return ErrFGridSize
	}
	return nil
}

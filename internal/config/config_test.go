package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathomics/histospat-backend-go/internal/config"
	"github.com/pathomics/histospat-backend-go/internal/functional"
)

func validEngine() config.EngineConfig {
	return config.EngineConfig{
		GridSize:           20,
		DistanceGridLength: functional.DefaultGridLength,
		RMaxFraction:       functional.DefaultRMaxFraction,
		SectorStart:        functional.DefaultSectorStart,
		SectorEnd:          functional.DefaultSectorEnd,
		FGridSize:          functional.DefaultFGridSize,
	}
}

func TestEngineConfigValidate(t *testing.T) {
	require.NoError(t, validEngine().Validate())

	cases := []struct {
		name   string
		mutate func(e *config.EngineConfig)
		want   error
	}{
		{"grid size below 1", func(e *config.EngineConfig) { e.GridSize = 0 }, config.ErrInvalidGridSize},
		{"distance grid too short", func(e *config.EngineConfig) { e.DistanceGridLength = 1 }, config.ErrInvalidDistanceGrid},
		{"negative rmax fraction", func(e *config.EngineConfig) { e.RMaxFraction = -1 }, config.ErrInvalidRMaxFraction},
		{"zero rmax fraction", func(e *config.EngineConfig) { e.RMaxFraction = 0 }, config.ErrInvalidRMaxFraction},
		{"negative bandwidth", func(e *config.EngineConfig) { e.Bandwidth = -0.1 }, config.ErrInvalidBandwidth},
		{"inverted sector", func(e *config.EngineConfig) { e.SectorStart, e.SectorEnd = 2, 1 }, config.ErrInvalidSector},
		{"f grid too small", func(e *config.EngineConfig) { e.FGridSize = 1 }, config.ErrInvalidFGridSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validEngine()
			tc.mutate(&e)
			assert.ErrorIs(t, e.Validate(), tc.want)
		})
	}
}

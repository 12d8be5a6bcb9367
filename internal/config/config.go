package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/pathomics/histospat-backend-go/internal/functional"
)

var (
	// ErrInvalidGridSize indicates a quadrat resolution below 1.
	ErrInvalidGridSize = errors.New("config: grid size must be at least 1")
	// ErrInvalidDistanceGrid indicates a distance grid with fewer than 2 samples.
	ErrInvalidDistanceGrid = errors.New("config: distance grid length must be at least 2")
	// ErrInvalidRMaxFraction indicates a non-positive maximum-distance fraction.
	ErrInvalidRMaxFraction = errors.New("config: r_max fraction must be positive")
	// ErrInvalidBandwidth indicates a negative kernel bandwidth.
	ErrInvalidBandwidth = errors.New("config: kernel bandwidth must not be negative")
	// ErrInvalidSector indicates malformed sector bounds.
	ErrInvalidSector = errors.New("config: sector bounds must satisfy 0 <= start < end <= 2π")
	// ErrInvalidFGridSize indicates an empty-space test lattice below 2×2.
	ErrInvalidFGridSize = errors.New("config: empty-space test grid size must be at least 2")
)

// EngineConfig holds the feature-engine parameters. Defaults reproduce the
// standard extraction setup: a 20×20 lattice and a 500-sample distance grid.
type EngineConfig struct {
	GridSize           int
	DistanceGridLength int
	RMaxFraction       float64
	SectorStart        float64
	SectorEnd          float64
	Bandwidth          float64
	FGridSize          int
}

// Validate rejects malformed engine parameters before any computation starts
func (e EngineConfig) Validate() error {
	if e.GridSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidGridSize, e.GridSize)
	}
	if e.DistanceGridLength < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidDistanceGrid, e.DistanceGridLength)
	}
	if e.RMaxFraction <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidRMaxFraction, e.RMaxFraction)
	}
	if e.Bandwidth < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidBandwidth, e.Bandwidth)
	}
	if e.SectorStart < 0 || e.SectorEnd > 2*math.Pi || e.SectorStart >= e.SectorEnd {
		return fmt.Errorf("%w: got [%v, %v)", ErrInvalidSector, e.SectorStart, e.SectorEnd)
	}
	if e.FGridSize < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidFGridSize, e.FGridSize)
	}
	return nil
}

// FunctionalOptions maps the engine config to the functional engine's options
func (e EngineConfig) FunctionalOptions() functional.Options {
	return functional.Options{
		GridLength:   e.DistanceGridLength,
		RMaxFraction: e.RMaxFraction,
		SectorStart:  e.SectorStart,
		SectorEnd:    e.SectorEnd,
		Bandwidth:    e.Bandwidth,
		FGridSize:    e.FGridSize,
	}
}

// Config holds the application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	Engine    EngineConfig
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/features/features.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,
		Engine: EngineConfig{
			GridSize:           envInt("GRID_SIZE", 20),
			DistanceGridLength: envInt("DISTANCE_GRID_LENGTH", functional.DefaultGridLength),
			RMaxFraction:       envFloat("RMAX_FRACTION", functional.DefaultRMaxFraction),
			SectorStart:        envFloat("SECTOR_START", functional.DefaultSectorStart),
			SectorEnd:          envFloat("SECTOR_END", functional.DefaultSectorEnd),
			Bandwidth:          envFloat("PCF_BANDWIDTH", 0),
			FGridSize:          envInt("F_GRID_SIZE", functional.DefaultFGridSize),
		},
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

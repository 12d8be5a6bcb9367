package service

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pathomics/histospat-backend-go/internal/config"
	"github.com/pathomics/histospat-backend-go/internal/features"
	"github.com/pathomics/histospat-backend-go/internal/functional"
	"github.com/pathomics/histospat-backend-go/internal/models"
	"github.com/pathomics/histospat-backend-go/internal/pattern"
	"github.com/pathomics/histospat-backend-go/internal/repository"
)

// ErrUnknownFamily indicates a curve request naming no registered family.
var ErrUnknownFamily = errors.New("service: unknown functional family")

// FeatureService handles business logic for feature extraction
type FeatureService struct {
	repo     *repository.FeatureRepository
	engine   config.EngineConfig
	topology features.TopologyProvider
}

// NewFeatureService creates a new feature service. The engine configuration
// is validated once here; extraction never starts with bad parameters.
func NewFeatureService(repo *repository.FeatureRepository, engine config.EngineConfig) (*FeatureService, error) {
	if err := engine.Validate(); err != nil {
		return nil, err
	}
	return &FeatureService{repo: repo, engine: engine}, nil
}

// WithTopology attaches the optional persistent-homology collaborator whose
// features are concatenated after the areal row
func (s *FeatureService) WithTopology(provider features.TopologyProvider) {
	s.topology = provider
}

// Extract runs the full pipeline for one image: classify and normalize the
// raw centroids, build the typed pattern, compute the areal row and any
// requested curves, and persist when asked.
func (s *FeatureService) Extract(req models.ExtractRequest) (*models.ExtractResponse, error) {
	families, err := parseFamilies(req.Curves)
	if err != nil {
		return nil, err
	}

	raw := make([]pattern.LabeledPoint, len(req.Points))
	for i, p := range req.Points {
		raw[i] = pattern.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}

	tp, report, err := pattern.Build(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to build pattern: %w", err)
	}

	agg, err := features.NewAggregator(tp, s.engine.GridSize, s.engine.FunctionalOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to configure engines: %w", err)
	}

	row := agg.ArealRowParallel()
	if err := features.AppendTopology(row, tp, s.topology); err != nil {
		return nil, err
	}
	curves, err := agg.CurvesParallel(families)
	if err != nil {
		return nil, err
	}

	resp := &models.ExtractResponse{
		ImageID: req.ImageID,
		Classification: models.ClassificationReport{
			Total:           report.Total,
			Matched:         report.Matched,
			Dropped:         report.Dropped,
			UnmatchedLabels: report.UnmatchedLabels,
		},
		Features: rowToValues(row),
		Curves:   curvesToResults(curves),
	}

	if req.Save {
		meta := models.StoredExtraction{
			ImageID:       req.ImageID,
			TotalPoints:   report.Total,
			MatchedPoints: report.Matched,
			DroppedPoints: report.Dropped,
			GridSize:      s.engine.GridSize,
		}
		if err := s.repo.SaveExtraction(meta, row, curves); err != nil {
			return nil, fmt.Errorf("failed to save extraction: %w", err)
		}
		resp.Saved = true
	}
	return resp, nil
}

// GetExtraction retrieves stored metadata and features for one image
func (s *FeatureService) GetExtraction(imageID string) (*models.StoredExtraction, []models.FeatureValue, error) {
	meta, err := s.repo.GetExtraction(imageID)
	if err != nil {
		return nil, nil, err
	}
	if meta == nil {
		return nil, nil, nil
	}
	values, err := s.repo.GetFeatures(imageID)
	if err != nil {
		return nil, nil, err
	}
	return meta, values, nil
}

// GetCurve retrieves one stored curve for one image
func (s *FeatureService) GetCurve(imageID, name string) (*models.CurveResult, error) {
	if _, ok := features.ParseFamily(familyOfCurveName(name)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	return s.repo.GetCurve(imageID, name)
}

// parseFamilies converts request strings to registry families exactly once,
// at this boundary
func parseFamilies(names []string) ([]features.Family, error) {
	families := make([]features.Family, 0, len(names))
	for _, name := range names {
		f, ok := features.ParseFamily(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
		}
		families = append(families, f)
	}
	return families, nil
}

// familyOfCurveName strips the type/pair suffix from a stored curve name
func familyOfCurveName(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}

func rowToValues(row *features.Row) []models.FeatureValue {
	entries := row.Entries()
	out := make([]models.FeatureValue, len(entries))
	for i, e := range entries {
		out[i] = models.FeatureValue{Name: e.Key}
		if e.Value.Valid {
			v := e.Value.Float64
			out[i].Value = &v
		}
	}
	return out
}

func curvesToResults(curves map[string]functional.Curve) []models.CurveResult {
	out := make([]models.CurveResult, 0, len(curves))
	for name, c := range curves {
		result := models.CurveResult{
			Name:    name,
			Defined: c.Defined,
			R:       c.R,
			Values:  make([]*float64, len(c.Value)),
		}
		for i, v := range c.Value {
			if !math.IsNaN(v) {
				val := v
				result.Values[i] = &val
			}
		}
		out = append(out, result)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

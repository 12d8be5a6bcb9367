package models

// RawPoint is one labeled centroid as submitted by a caller, in source
// coordinates
type RawPoint struct {
	X     float64 `json:"x" binding:"required"`
	Y     float64 `json:"y" binding:"required"`
	Label string  `json:"label" binding:"required"`
}

// ExtractRequest asks for feature extraction over one image's centroids
type ExtractRequest struct {
	ImageID string     `json:"image_id" binding:"required"`
	Points  []RawPoint `json:"points" binding:"required"`
	// Curves names the functional families to evaluate (empty = none);
	// see the registry for valid names, e.g. "K", "GCross", "PCF".
	Curves []string `json:"curves"`
	// Save persists the results to the feature store.
	Save bool `json:"save"`
}

// FeatureValue is one named scalar of the areal row; Value is null when the
// statistic is undefined for this input
type FeatureValue struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// CurveResult is one functional curve; undefined samples are null
type CurveResult struct {
	Name    string     `json:"name"`
	Defined bool       `json:"defined"`
	R       []float64  `json:"r"`
	Values  []*float64 `json:"values"`
}

// ClassificationReport summarizes label standardization for one input
type ClassificationReport struct {
	Total           int            `json:"total"`
	Matched         int            `json:"matched"`
	Dropped         int            `json:"dropped"`
	UnmatchedLabels map[string]int `json:"unmatched_labels,omitempty"`
}

// ExtractResponse carries the assembled feature row and requested curves
type ExtractResponse struct {
	ImageID        string               `json:"image_id"`
	Classification ClassificationReport `json:"classification"`
	Features       []FeatureValue       `json:"features"`
	Curves         []CurveResult        `json:"curves,omitempty"`
	Saved          bool                 `json:"saved"`
}

// StoredExtraction is the persisted extraction metadata
type StoredExtraction struct {
	ImageID       string `json:"image_id"`
	TotalPoints   int    `json:"total_points"`
	MatchedPoints int    `json:"matched_points"`
	DroppedPoints int    `json:"dropped_points"`
	GridSize      int    `json:"grid_size"`
	CreatedAt     string `json:"created_at"`
}

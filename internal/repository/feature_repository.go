package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"github.com/pathomics/histospat-backend-go/internal/database"
	"github.com/pathomics/histospat-backend-go/internal/features"
	"github.com/pathomics/histospat-backend-go/internal/functional"
	"github.com/pathomics/histospat-backend-go/internal/models"
)

// FeatureRepository handles database operations for extracted features
type FeatureRepository struct {
	db *sql.DB
}

// NewFeatureRepository creates a new feature repository
func NewFeatureRepository(db *sql.DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

// SaveExtraction persists an extraction's metadata, areal row and curves in
// one transaction, replacing any previous results for the image. Missing
// scalars are stored as NULL, never coerced to a number.
func (r *FeatureRepository) SaveExtraction(meta models.StoredExtraction, row *features.Row, curves map[string]functional.Curve) error {
	return database.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM extractions WHERE image_id = ?`, meta.ImageID); err != nil {
			return fmt.Errorf("failed to clear previous extraction: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO extractions (image_id, total_points, matched_points, dropped_points, grid_size)
			 VALUES (?, ?, ?, ?, ?)`,
			meta.ImageID, meta.TotalPoints, meta.MatchedPoints, meta.DroppedPoints, meta.GridSize,
		); err != nil {
			return fmt.Errorf("failed to insert extraction: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO areal_features (image_id, name, ord, value) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare feature insert: %w", err)
		}
		defer stmt.Close()

		for ord, entry := range row.Entries() {
			value := sql.NullFloat64{Float64: entry.Value.Float64, Valid: entry.Value.Valid}
			if _, err := stmt.Exec(meta.ImageID, entry.Key, ord, value); err != nil {
				return fmt.Errorf("failed to insert feature %s: %w", entry.Key, err)
			}
		}

		for name, curve := range curves {
			if err := insertCurve(tx, meta.ImageID, name, curve); err != nil {
				return err
			}
		}
		return nil
	})
}

// insertCurve stores one curve, NaN samples encoded as JSON null
func insertCurve(tx *sql.Tx, imageID, name string, curve functional.Curve) error {
	rJSON, err := json.Marshal(curve.R)
	if err != nil {
		return fmt.Errorf("failed to encode curve grid: %w", err)
	}
	values := make([]*float64, len(curve.Value))
	for i, v := range curve.Value {
		if !math.IsNaN(v) {
			val := v
			values[i] = &val
		}
	}
	vJSON, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode curve values: %w", err)
	}

	defined := 0
	if curve.Defined {
		defined = 1
	}
	if _, err := tx.Exec(
		`INSERT INTO functional_curves (image_id, name, defined, r_json, v_json) VALUES (?, ?, ?, ?, ?)`,
		imageID, name, defined, string(rJSON), string(vJSON),
	); err != nil {
		return fmt.Errorf("failed to insert curve %s: %w", name, err)
	}
	return nil
}

// GetExtraction retrieves the stored metadata for one image
func (r *FeatureRepository) GetExtraction(imageID string) (*models.StoredExtraction, error) {
	var meta models.StoredExtraction
	err := r.db.QueryRow(
		`SELECT image_id, total_points, matched_points, dropped_points, grid_size, created_at
		 FROM extractions WHERE image_id = ?`, imageID,
	).Scan(&meta.ImageID, &meta.TotalPoints, &meta.MatchedPoints, &meta.DroppedPoints, &meta.GridSize, &meta.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query extraction: %w", err)
	}
	return &meta, nil
}

// GetFeatures retrieves the stored areal row of one image in its original
// order; missing values come back as nil
func (r *FeatureRepository) GetFeatures(imageID string) ([]models.FeatureValue, error) {
	rows, err := r.db.Query(
		`SELECT name, value FROM areal_features WHERE image_id = ? ORDER BY ord`, imageID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query features: %w", err)
	}
	defer rows.Close()

	var out []models.FeatureValue
	for rows.Next() {
		var fv models.FeatureValue
		var value sql.NullFloat64
		if err := rows.Scan(&fv.Name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan feature: %w", err)
		}
		if value.Valid {
			v := value.Float64
			fv.Value = &v
		}
		out = append(out, fv)
	}
	return out, rows.Err()
}

// GetCurve retrieves one stored curve of one image; nil when absent
func (r *FeatureRepository) GetCurve(imageID, name string) (*models.CurveResult, error) {
	var defined int
	var rJSON, vJSON string
	err := r.db.QueryRow(
		`SELECT defined, r_json, v_json FROM functional_curves WHERE image_id = ? AND name = ?`,
		imageID, name,
	).Scan(&defined, &rJSON, &vJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query curve: %w", err)
	}

	result := &models.CurveResult{Name: name, Defined: defined == 1}
	if err := json.Unmarshal([]byte(rJSON), &result.R); err != nil {
		return nil, fmt.Errorf("failed to decode curve grid: %w", err)
	}
	if err := json.Unmarshal([]byte(vJSON), &result.Values); err != nil {
		return nil, fmt.Errorf("failed to decode curve values: %w", err)
	}
	return result, nil
}

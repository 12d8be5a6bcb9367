// Package areal computes the scalar index suite over quadrat count vectors
// and point sets: spatial autocorrelation, dispersion, overlap and
// similarity. A statistic whose defining denominator vanishes or whose
// minimum sample size is unmet yields an explicit missing Scalar, never a
// silent zero.
package areal

import "encoding/json"

// Scalar is a statistic result that may be undefined. It mirrors
// sql.NullFloat64 so missing results map to SQL NULL and JSON null.
type Scalar struct {
	Float64 float64
	Valid   bool
}

// Value wraps a defined result
func Value(v float64) Scalar {
	return Scalar{Float64: v, Valid: true}
}

// Missing is the explicit undefined result
func Missing() Scalar {
	return Scalar{}
}

// MarshalJSON encodes a missing Scalar as null
func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Float64)
}

// UnmarshalJSON decodes null as missing
func (s *Scalar) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Scalar{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Value(v)
	return nil
}

// toFloat converts a count vector to float64 for the numeric routines
func toFloat(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}
	return out
}

package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// PriceRange bounds are optional; a nil bound imposes no constraint.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// UnmarshalJSON accepts numbers or numeric strings for each bound. Anything
// else (null, "", "abc", objects) leaves the bound unset.
func (r *PriceRange) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Min = parseBound(raw["min"])
	r.Max = parseBound(raw["max"])
	return nil
}

func parseBound(raw json.RawMessage) *float64 {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return finite(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return finite(f)
		}
	}
	return nil
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Contains reports whether price satisfies every supplied bound.
func (r PriceRange) Contains(price float64) bool {
	if r.Min != nil && price < *r.Min {
		return false
	}
	if r.Max != nil && price > *r.Max {
		return false
	}
	return true
}

// Constraints is the filter input for one recommendation request.
type Constraints struct {
	Category   string      `json:"category,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	Query      string      `json:"query"`
}

// Recommendation is one ranked entry with the resolved product attached.
type Recommendation struct {
	ProductID      int64   `json:"productId"`
	RelevanceScore float64 `json:"relevanceScore"`
	Reasoning      string  `json:"reasoning"`
	Product        Product `json:"product"`
}

// RecommendationResult is built fresh per request.
type RecommendationResult struct {
	Recommendations        []Recommendation `json:"recommendations"`
	Summary                string           `json:"summary"`
	AlternativeSuggestions string           `json:"alternativeSuggestions"`
}

// ProductIDs lists the recommended ids in rank order.
func (r RecommendationResult) ProductIDs() []int64 {
	ids := make([]int64, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		ids = append(ids, rec.ProductID)
	}
	return ids
}

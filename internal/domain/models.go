package domain

import (
	"encoding/json"
	"strings"
)

// Product is a catalog row. Specifications are stored as serialized JSON
// text and parsed on read.
type Product struct {
	ID          int64    `db:"id" json:"id"`
	Name        string   `db:"name" json:"name"`
	Category    string   `db:"category" json:"category"`
	Price       float64  `db:"price" json:"price"`
	Description string   `db:"description" json:"description"`
	Brand       string   `db:"brand" json:"brand"`
	Rating      *float64 `db:"rating" json:"rating,omitempty"`
	ImageURL    *string  `db:"image_url" json:"image_url,omitempty"`
	SpecsJSON   string   `db:"specifications" json:"-"`
	CreatedAt   string   `db:"created_at" json:"created_at,omitempty"`
}

// Specs maps attribute name to attribute value.
type Specs map[string]any

// ParseSpecs never fails: blank or unparseable text yields an empty mapping.
func ParseSpecs(raw string) Specs {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Specs{}
	}
	var s Specs
	if err := json.Unmarshal([]byte(raw), &s); err != nil || s == nil {
		return Specs{}
	}
	return s
}

// EncodeSpecs is the inverse of ParseSpecs; nil encodes as "{}".
func EncodeSpecs(s Specs) string {
	if len(s) == 0 {
		return "{}"
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func (p Product) Specifications() Specs { return ParseSpecs(p.SpecsJSON) }

// MarshalJSON exposes specifications as an object rather than the stored text.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		Specifications Specs `json:"specifications"`
	}{plain: plain(p), Specifications: p.Specifications()})
}

func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	var aux struct {
		plain
		Specifications Specs `json:"specifications"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = Product(aux.plain)
	p.SpecsJSON = EncodeSpecs(aux.Specifications)
	return nil
}

// SearchText is the lower-cased haystack used by keyword matching.
func (p Product) SearchText() string {
	return strings.ToLower(p.Name + " " + p.Description + " " + p.Category + " " + p.Brand)
}

// RecommendationRecord is one append-only history row.
type RecommendationRecord struct {
	ID          string `db:"id" json:"id"`
	UserQuery   string `db:"user_query" json:"user_query"`
	ProductsRaw string `db:"recommended_products" json:"-"`
	AIResponse  string `db:"ai_response" json:"-"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}

// QueryFrequency is one row of the most-frequent-query report.
type QueryFrequency struct {
	UserQuery string `db:"user_query" json:"user_query"`
	Frequency int    `db:"frequency" json:"frequency"`
}

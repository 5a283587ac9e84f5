package recommend

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const amount = `\s*\$?(\d+(?:\.\d+)?)`

// pricePatterns are tried in order; the first match wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)under` + amount),
	regexp.MustCompile(`(?i)below` + amount),
	regexp.MustCompile(`(?i)less\s+than` + amount),
	regexp.MustCompile(`(?i)within` + amount),
	regexp.MustCompile(`(?i)budget\s+of` + amount),
	regexp.MustCompile(`(?i)max` + amount),
	regexp.MustCompile(`(?i)maximum` + amount),
	regexp.MustCompile(`(?i)\$?(\d+(?:\.\d+)?)\s+or\s+less`),
	regexp.MustCompile(`(?i)up\s+to` + amount),
}

// Interpretation is what could be inferred from a free-text query.
type Interpretation struct {
	Category string   // empty when nothing matched
	MaxPrice *float64 // nil when nothing matched
}

// Interpret runs both extractions over query. It never fails; a field is
// left empty when nothing was recognized.
func Interpret(query string) Interpretation {
	var in Interpretation
	in.Category, _ = ExtractCategory(query)
	if p, ok := ExtractMaxPrice(query); ok {
		in.MaxPrice = &p
	}
	return in
}

// ExtractMaxPrice finds an "at most N" phrase. Only a positive finite N
// counts as an inference.
func ExtractMaxPrice(query string) (float64, bool) {
	lower := strings.ToLower(query)
	for _, re := range pricePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil || m[1] == "" {
			continue
		}
		p, err := strconv.ParseFloat(m[1], 64)
		if err != nil || p <= 0 || math.IsInf(p, 0) {
			return 0, false
		}
		return p, true
	}
	return 0, false
}

// ExtractCategory returns the first canonical tag whose synonym appears in
// the lower-cased query.
func ExtractCategory(query string) (string, bool) {
	lower := strings.ToLower(query)
	for _, c := range Categories {
		for _, kw := range c.Synonyms {
			if strings.Contains(lower, kw) {
				return c.Tag, true
			}
		}
	}
	return "", false
}

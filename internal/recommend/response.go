package recommend

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"shopassist/internal/domain"
)

const (
	DefaultSummary      = "Here are my recommendations based on your query."
	DefaultAlternatives = "No alternative suggestions were provided."
	DefaultReasoning    = "Recommended as a good match for your query."
)

// ValidateResponse turns raw model text into a result that only references
// candidate products. It fails with a malformed_ai_response error when the
// text is not a JSON object or its recommendations field is not a list.
// Entries that cannot be resolved to a candidate are dropped.
func ValidateResponse(raw string, candidates []domain.Product) (domain.RecommendationResult, error) {
	text := StripCodeFence(raw)

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &top); err != nil {
		return domain.RecommendationResult{}, domain.MalformedAIResponse("response is not a JSON object", err)
	}
	recsRaw, ok := top["recommendations"]
	if !ok || !isArray(recsRaw) {
		return domain.RecommendationResult{}, domain.MalformedAIResponse("recommendations field is not a list", nil)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(recsRaw, &entries); err != nil {
		return domain.RecommendationResult{}, domain.MalformedAIResponse("recommendations field is not a list", err)
	}

	byID := make(map[int64]domain.Product, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}

	seen := make(map[int64]bool, len(entries))
	recs := make([]domain.Recommendation, 0, len(entries))
	for _, e := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(e, &fields); err != nil || fields == nil {
			continue
		}
		id, ok := parseID(fields["productId"])
		if !ok || seen[id] {
			continue
		}
		p, ok := byID[id]
		if !ok {
			continue
		}
		seen[id] = true
		reasoning := stringOr(fields["reasoning"], DefaultReasoning)
		recs = append(recs, domain.Recommendation{
			ProductID:      id,
			RelevanceScore: parseScore(fields["relevanceScore"]),
			Reasoning:      reasoning,
			Product:        p,
		})
	}

	return domain.RecommendationResult{
		Recommendations:        recs,
		Summary:                stringOr(top["summary"], DefaultSummary),
		AlternativeSuggestions: stringOr(top["alternativeSuggestions"], DefaultAlternatives),
	}, nil
}

// StripCodeFence removes a surrounding ``` or ```json fence. The json tag
// is dropped even when the payload starts on the same line.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	} else if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// some other info string on the opening line
		if tag := strings.TrimSpace(s[:nl]); !strings.ContainsAny(tag, "{[") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isArray(raw json.RawMessage) bool {
	b := bytes.TrimSpace(raw)
	return len(b) > 0 && b[0] == '['
}

func parseID(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return 0, false
		}
		return int64(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return n, err == nil
	}
	return 0, false
}

// parseScore clamps to [0,1]; anything non-numeric scores 0.
func parseScore(raw json.RawMessage) float64 {
	var f float64
	if len(raw) == 0 {
		return 0
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0
		}
	}
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func stringOr(raw json.RawMessage, def string) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

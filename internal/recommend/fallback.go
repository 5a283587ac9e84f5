package recommend

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"shopassist/internal/domain"
)

// The two fallback call sites keep different score floors.
const (
	// FloorQueryPath applies when the orchestrator itself degrades after an
	// unexpected failure in the AI stage.
	FloorQueryPath = 0.5
	// FloorAIFailure applies when the AI provider fails or its output cannot
	// be validated.
	FloorAIFailure = 0.3

	// MaxFallbackResults caps the fallback list.
	MaxFallbackResults = 5
)

// FallbackStyle selects the floor and wording for a fallback call site.
type FallbackStyle int

const (
	StyleAIFailure FallbackStyle = iota
	StyleQueryPath
)

type scored struct {
	product domain.Product
	score   int
}

// Fallback ranks candidates by keyword overlap with the query. It is
// deterministic and has no side effects.
func Fallback(query string, candidates []domain.Product, style FallbackStyle) domain.RecommendationResult {
	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	keywords := strings.Fields(lowerQuery)

	var ranked []scored
	for _, p := range candidates {
		if s := keywordScore(p.SearchText(), lowerQuery, keywords); s > 0 {
			ranked = append(ranked, scored{product: p, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > MaxFallbackResults {
		ranked = ranked[:MaxFallbackResults]
	}

	floor := FloorAIFailure
	if style == StyleQueryPath {
		floor = FloorQueryPath
	}

	recs := make([]domain.Recommendation, 0, len(ranked))
	for _, r := range ranked {
		recs = append(recs, domain.Recommendation{
			ProductID:      r.product.ID,
			RelevanceScore: relevance(r.score, len(keywords), floor),
			Reasoning:      fallbackReasoning(style, query, r.product),
			Product:        r.product,
		})
	}

	summary, alt := fallbackSummary(style, query, len(recs))
	return domain.RecommendationResult{Recommendations: recs, Summary: summary, AlternativeSuggestions: alt}
}

// keywordScore counts keywords contained in text, plus 2 when the whole
// query is contained.
func keywordScore(text, lowerQuery string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			score++
		}
	}
	if lowerQuery != "" && strings.Contains(text, lowerQuery) {
		score += 2
	}
	return score
}

func relevance(score, keywordCount int, floor float64) float64 {
	if keywordCount == 0 {
		return floor
	}
	v := float64(score) / float64(keywordCount)
	if v < floor {
		v = floor
	}
	if v > 1 {
		v = 1
	}
	return v
}

func fallbackReasoning(style FallbackStyle, query string, p domain.Product) string {
	if style == StyleQueryPath {
		return fmt.Sprintf("This product matches your search for \"%s\". %s is a %s product that fits your criteria.",
			query, p.Name, strings.ToLower(p.Category))
	}
	return fmt.Sprintf("This %s matches your search for \"%s\". %s by %s fits your criteria with a price of $%s.",
		strings.ToLower(p.Category), query, p.Name, p.Brand, formatPrice(p.Price))
}

func fallbackSummary(style FallbackStyle, query string, n int) (string, string) {
	if style == StyleQueryPath {
		summary := fmt.Sprintf("Found %d products matching \"%s\". These results are based on keyword matching.", n, query)
		if n == 0 {
			return summary, "Try using different keywords or browse our categories."
		}
		return summary, "For more personalized recommendations, try describing what you're looking for in more detail."
	}
	if n == 0 {
		return fmt.Sprintf("Found 0 products matching \"%s\" using keyword analysis. Try different search terms.", query),
			"Try using broader search terms or browse our product categories."
	}
	return fmt.Sprintf("Found %d products matching \"%s\" using keyword analysis. Results are ranked by relevance.", n, query),
		"For more personalized recommendations, consider enabling AI features."
}

// NoMatches is returned when filtering leaves nothing to rank.
func NoMatches() domain.RecommendationResult {
	return domain.RecommendationResult{
		Recommendations:        []domain.Recommendation{},
		Summary:                "No products found matching your criteria.",
		AlternativeSuggestions: "Try adjusting your filters or search terms.",
	}
}

func formatPrice(p float64) string { return strconv.FormatFloat(p, 'f', -1, 64) }

package recommend

import (
	"strings"

	"shopassist/internal/domain"
)

// AllCategories is the wildcard sentinel for the explicit category filter.
const AllCategories = "all"

// FilterStep records how many candidates survived one narrowing step.
type FilterStep struct {
	Name      string
	Value     string
	Remaining int
}

// FilterResult is the candidate set plus what was applied to reach it.
type FilterResult struct {
	Candidates []domain.Product
	Inferred   Interpretation
	Steps      []FilterStep
}

// Filter narrows products in four sequential steps: explicit category,
// explicit price range, inferred category, inferred price ceiling. Inference
// only runs for a constraint the caller did not supply. The output is always
// a subset of the input, in input order.
func Filter(products []domain.Product, c domain.Constraints) FilterResult {
	out := FilterResult{Candidates: products}

	category := strings.TrimSpace(c.Category)
	if category != "" && !strings.EqualFold(category, AllCategories) {
		out.Candidates = keep(out.Candidates, func(p domain.Product) bool {
			return strings.EqualFold(p.Category, category)
		})
		out.Steps = append(out.Steps, FilterStep{Name: "category", Value: category, Remaining: len(out.Candidates)})
	}

	if c.PriceRange != nil {
		pr := *c.PriceRange
		out.Candidates = keep(out.Candidates, func(p domain.Product) bool { return pr.Contains(p.Price) })
		out.Steps = append(out.Steps, FilterStep{Name: "price_range", Value: describeRange(pr), Remaining: len(out.Candidates)})
	}

	in := Interpret(c.Query)

	if category == "" && in.Category != "" {
		out.Inferred.Category = in.Category
		synonyms := SynonymsFor(in.Category)
		out.Candidates = keep(out.Candidates, func(p domain.Product) bool { return matchesAny(p, synonyms) })
		out.Steps = append(out.Steps, FilterStep{Name: "inferred_category", Value: in.Category, Remaining: len(out.Candidates)})
	}

	if c.PriceRange == nil && in.MaxPrice != nil {
		ceiling := *in.MaxPrice
		out.Inferred.MaxPrice = in.MaxPrice
		out.Candidates = keep(out.Candidates, func(p domain.Product) bool { return p.Price <= ceiling })
		out.Steps = append(out.Steps, FilterStep{Name: "inferred_max_price", Value: formatPrice(ceiling), Remaining: len(out.Candidates)})
	}

	return out
}

func keep(in []domain.Product, pred func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, p := range in {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesAny(p domain.Product, synonyms []string) bool {
	category := strings.ToLower(p.Category)
	name := strings.ToLower(p.Name)
	desc := strings.ToLower(p.Description)
	for _, kw := range synonyms {
		if strings.Contains(category, kw) || strings.Contains(name, kw) || strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

func describeRange(r domain.PriceRange) string {
	lo, hi := "-", "-"
	if r.Min != nil {
		lo = formatPrice(*r.Min)
	}
	if r.Max != nil {
		hi = formatPrice(*r.Max)
	}
	return lo + ".." + hi
}

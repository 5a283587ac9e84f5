package ai

import (
	"encoding/json"
	"fmt"

	"shopassist/internal/domain"
)

type promptProduct struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Category       string       `json:"category"`
	Price          float64      `json:"price"`
	Description    string       `json:"description"`
	Brand          string       `json:"brand"`
	Rating         *float64     `json:"rating"`
	Specifications domain.Specs `json:"specifications"`
}

// BuildPrompt embeds the query and every candidate, and pins the output to
// the JSON shape ValidateResponse accepts.
func BuildPrompt(query string, candidates []domain.Product) (string, error) {
	list := make([]promptProduct, 0, len(candidates))
	for _, p := range candidates {
		list = append(list, promptProduct{
			ID:             p.ID,
			Name:           p.Name,
			Category:       p.Category,
			Price:          p.Price,
			Description:    p.Description,
			Brand:          p.Brand,
			Rating:         p.Rating,
			Specifications: p.Specifications(),
		})
	}
	products, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", err
	}
	q, _ := json.Marshal(query)

	return fmt.Sprintf(`You are an expert product recommendation assistant for an e-commerce store.

User query: %s

Available products:
%s

Recommend the products from the list above that best fit the query.
- Consider price range, category, features and brand preferences in the query.
- Rank by relevance, most relevant first.
- Give a short reasoning for each recommendation.
- Only use "id" values that appear in the list above.

Return STRICT JSON ONLY (no markdown, no prose) with this schema:
{
  "recommendations": [
    {"productId": <id>, "relevanceScore": <number between 0 and 1>, "reasoning": "<why it fits>"}
  ],
  "summary": "<one or two sentences about the picks>",
  "alternativeSuggestions": "<other things the shopper might consider>"
}`, q, products), nil
}

// Package recommend holds the pure parts of the recommendation pipeline:
// query interpretation, candidate filtering, response validation and the
// keyword fallback scorer.
package recommend

// CategoryKeywords is one canonical category tag and its synonyms.
type CategoryKeywords struct {
	Tag      string
	Synonyms []string
}

// Categories is the single table used both for inferring a category from a
// query and for matching products against the inferred category. Order is
// significant: the first tag with a matching synonym wins.
var Categories = []CategoryKeywords{
	{Tag: "phone", Synonyms: []string{"phone", "smartphone", "mobile", "iphone", "android", "galaxy", "pixel", "oneplus", "motorola", "moto"}},
	{Tag: "laptop", Synonyms: []string{"laptop", "computer", "macbook", "notebook", "gaming laptop"}},
	{Tag: "headphones", Synonyms: []string{"headphones", "earbuds", "earphones", "headset", "audio"}},
	{Tag: "shoes", Synonyms: []string{"shoes", "sneakers", "boots", "footwear", "running shoes"}},
	{Tag: "jeans", Synonyms: []string{"jeans", "pants", "denim", "trousers"}},
	{Tag: "mixer", Synonyms: []string{"mixer", "stand mixer", "kitchen mixer", "blender"}},
	{Tag: "vacuum", Synonyms: []string{"vacuum", "cleaner", "hoover"}},
	{Tag: "fitness", Synonyms: []string{"fitness", "tracker", "fitbit", "watch", "wearable"}},
	{Tag: "book", Synonyms: []string{"book", "ebook", "novel", "read", "literature"}},
}

// SynonymsFor returns the synonyms of tag, or the tag itself when unknown.
func SynonymsFor(tag string) []string {
	for _, c := range Categories {
		if c.Tag == tag {
			return c.Synonyms
		}
	}
	return []string{tag}
}

package bundles

import (
	"context"
	"log"

	"github.com/bundlewise/go-api/pkg/ai"
)

// StaticSuggestions is the fallback list shown when the AI suggestion path
// fails for any reason. Suggestions are a non-critical enhancement, so a
// failure never surfaces as an error.
var StaticSuggestions = []string{
	"Group products that are used together",
	"Bundle by matching color or style",
	"Pair best sellers with slow movers",
	"Create seasonal gift sets",
}

// Suggest returns grouping-prompt suggestions for the selected products.
// The second return reports whether the static fallback was used.
func (p *Pipeline) Suggest(ctx context.Context, companyID string, productIDs []int) ([]string, bool) {
	products, err := FetchSnapshots(ctx, p.Catalog, companyID, productIDs)
	if err != nil {
		log.Printf("Warning: suggestion snapshot fetch failed, using static list: %v", err)
		return StaticSuggestions, true
	}

	raw, err := p.AI.GenerateCompletion(ctx, ai.SuggestionsSystemPrompt, ai.BuildSuggestionsPrompt(products))
	if err != nil {
		log.Printf("Warning: suggestion generation failed, using static list: %v", err)
		return StaticSuggestions, true
	}

	suggestions, err := ai.ParseSuggestions(raw)
	if err != nil || len(suggestions) == 0 {
		log.Printf("Warning: suggestion parse failed, using static list: %v", err)
		return StaticSuggestions, true
	}
	return suggestions, false
}

package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bundlewise/go-api/pkg/models"
)

// System prompts for the three generation tasks
const (
	GroupingSystemPrompt = `You are a merchandising assistant for an e-commerce store.
You group products into bundles that are sold together. Apply these rules in order:
1. Correlate products by category, shared keywords in name or description, typical co-use, and adjacent categories.
2. Prefer groups of 2 to 3 products. Never emit a group with a single product; leave unmatched products out entirely.
3. If the merchant's instructions state an explicit constraint (for example "only by color" or "limit to size 3"), that constraint overrides rules 1 and 2.
4. OUTPUT MUST BE STRICT JSON ONLY. NO MARKDOWN. Respond with a JSON array of arrays of numeric product ids and nothing else.`

	NamingSystemPrompt = `You are a creative copywriter for an e-commerce store.
You produce a single short, marketable bundle name.
Respond with the name only. Do not add quotes, explanations, or any other text.`

	SuggestionsSystemPrompt = `You are a merchandising assistant for an e-commerce store.
You suggest short free-text prompts a merchant could use to steer AI bundle grouping for their catalog.
OUTPUT MUST BE STRICT JSON ONLY. NO MARKDOWN. Respond with a JSON array of exactly 4 suggestion strings and nothing else.`
)

// MaxImagesPerProduct caps how many images each product contributes to the
// logo prompt legend.
const MaxImagesPerProduct = 3

// BuildGroupingPrompt assembles the user message for the grouping task from
// the product snapshots and the merchant's free-text instructions.
func BuildGroupingPrompt(products []models.ProductDescriptor, userPrompt string) string {
	jsonData, _ := json.MarshalIndent(products, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Products:\n%s\n", string(jsonData))
	if strings.TrimSpace(userPrompt) != "" {
		fmt.Fprintf(&b, "\nMerchant instructions: %s\n", userPrompt)
	}
	b.WriteString("\nGroup these products into bundles and return only the JSON array of arrays of product ids.")
	return b.String()
}

// BuildNamingPrompt assembles the user message for the naming task. When
// oldName is supplied the task becomes a rename under 40 characters.
func BuildNamingPrompt(products []models.ProductDetail, oldName string) string {
	pairs := make([]map[string]string, 0, len(products))
	for _, p := range products {
		pairs = append(pairs, map[string]string{
			"name":        p.Name,
			"description": p.Description,
		})
	}
	jsonData, _ := json.MarshalIndent(pairs, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Bundle products:\n%s\n", string(jsonData))
	if oldName != "" {
		fmt.Fprintf(&b, "\nThe bundle is currently named %q. Suggest a different name, under 40 characters.\n", oldName)
	} else {
		b.WriteString("\nSuggest one short marketable name for a bundle containing these products.\n")
	}
	return b.String()
}

// BuildSuggestionsPrompt assembles the user message for the prompt-suggestion
// task.
func BuildSuggestionsPrompt(products []models.ProductDescriptor) string {
	jsonData, _ := json.MarshalIndent(products, "", "  ")
	return fmt.Sprintf("The merchant selected these products:\n%s\n\nSuggest 4 short grouping prompts.", string(jsonData))
}

// BuildImageLegend numbers every product image with a running counter across
// products and maps each index range back to its product name, e.g.
// "Image 1: Mug" or "Images 2-3: Tea Sampler".
func BuildImageLegend(products []models.ProductDetail) string {
	var lines []string
	counter := 0
	for _, p := range products {
		n := len(p.Images)
		if n > MaxImagesPerProduct {
			n = MaxImagesPerProduct
		}
		if n == 0 {
			continue
		}
		start := counter + 1
		counter += n
		if n == 1 {
			lines = append(lines, fmt.Sprintf("Image %d: %s", start, p.Name))
		} else {
			lines = append(lines, fmt.Sprintf("Images %d-%d: %s", start, counter, p.Name))
		}
	}
	return strings.Join(lines, "\n")
}

// BuildImagePrompt assembles the logo-generation prompt: the image legend,
// the product image URLs in legend order, and the merchant's optional
// refinement instruction.
func BuildImagePrompt(products []models.ProductDetail, additionalPrompt string) string {
	var b strings.Builder
	b.WriteString("Design a clean square logo for an e-commerce product bundle containing the products below. ")
	b.WriteString("Combine the products into one cohesive composition on a neutral background, no text.\n\n")

	if legend := BuildImageLegend(products); legend != "" {
		fmt.Fprintf(&b, "Product images:\n%s\n", legend)
		b.WriteString("Reference URLs:\n")
		for _, p := range products {
			n := len(p.Images)
			if n > MaxImagesPerProduct {
				n = MaxImagesPerProduct
			}
			for _, u := range p.Images[:n] {
				fmt.Fprintf(&b, "- %s\n", u)
			}
		}
	} else {
		b.WriteString("Products:\n")
		for _, p := range products {
			fmt.Fprintf(&b, "- %s\n", p.Name)
		}
	}

	if strings.TrimSpace(additionalPrompt) != "" {
		fmt.Fprintf(&b, "\nAdditional instructions: %s\n", additionalPrompt)
	}
	return b.String()
}

// GroupingSchema is the structured-output schema for the grouping call: an
// array of arrays of integer product ids.
func GroupingSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"groups"},
		"properties": map[string]any{
			"groups": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
		},
	}
}

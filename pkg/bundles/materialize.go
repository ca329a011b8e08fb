package bundles

import (
	"github.com/bundlewise/go-api/pkg/models"
)

// Materialize joins candidate groups against the fetched snapshots. Ids with
// no fetched counterpart are dropped from their group without error: the
// model may hallucinate ids, or a product may have been deactivated since
// selection. Size validation already happened on the raw groups at parse
// time and is deliberately not repeated after resolution, so a group can
// surface with fewer than 2 surviving products. The result keeps the model's
// original group indexes so the frontend can correlate its ordering.
func Materialize(groups []models.CandidateGroup, fetched []models.ProductDescriptor) map[int]models.ResolvedBundle {
	byID := make(map[int]models.ProductDescriptor, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	resolved := make(map[int]models.ResolvedBundle, len(groups))
	for i, group := range groups {
		bundle := models.ResolvedBundle{SourceGroup: group}
		for _, id := range group {
			if p, ok := byID[id]; ok {
				bundle.Products = append(bundle.Products, p)
			}
		}
		resolved[i] = bundle
	}
	return resolved
}

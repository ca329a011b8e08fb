package bundles

import (
	"context"

	"github.com/bundlewise/go-api/pkg/models"
)

// FetchSnapshots retrieves the minimal product descriptors for the given
// ids. The caller has already rejected empty id lists, and the ids are
// explicit, so the catalog is asked for a single page sized to the id count.
// Ids the catalog does not return are simply absent from the result; the
// materializer handles the gap.
func FetchSnapshots(ctx context.Context, catalog Catalog, companyID string, productIDs []int) ([]models.ProductDescriptor, error) {
	return catalog.GetProducts(ctx, companyID, productIDs)
}

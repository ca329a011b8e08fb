package bundles

import (
	"testing"

	"github.com/bundlewise/go-api/pkg/models"
)

func TestMaterializeDropsUnresolvableIDs(t *testing.T) {
	groups := []models.CandidateGroup{{1, 2, 999}}
	fetched := []models.ProductDescriptor{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
	}

	resolved := Materialize(groups, fetched)

	bundle, ok := resolved[0]
	if !ok {
		t.Fatal("group 0 missing from result")
	}
	if len(bundle.Products) != 2 {
		t.Fatalf("expected 2 resolved products, got %d", len(bundle.Products))
	}
	for _, p := range bundle.Products {
		if p.ID != 1 && p.ID != 2 {
			t.Errorf("unexpected product id %d", p.ID)
		}
	}
	if len(bundle.SourceGroup) != 3 {
		t.Errorf("source group should keep the raw ids, got %v", bundle.SourceGroup)
	}
}

func TestMaterializeEveryProductComesFromSourceGroup(t *testing.T) {
	groups := []models.CandidateGroup{{4, 5}, {6, 7}}
	fetched := []models.ProductDescriptor{
		{ID: 4}, {ID: 5}, {ID: 6}, {ID: 7}, {ID: 8},
	}

	for idx, bundle := range Materialize(groups, fetched) {
		members := make(map[int]bool)
		for _, id := range bundle.SourceGroup {
			members[id] = true
		}
		for _, p := range bundle.Products {
			if !members[p.ID] {
				t.Errorf("bundle %d contains product %d not in its source group", idx, p.ID)
			}
		}
	}
}

func TestMaterializePreservesGroupIndexes(t *testing.T) {
	groups := []models.CandidateGroup{{1, 2}, {3, 4}, {5, 6}}
	fetched := []models.ProductDescriptor{{ID: 3}, {ID: 4}}

	resolved := Materialize(groups, fetched)
	if len(resolved) != 3 {
		t.Fatalf("expected all 3 group indexes present, got %d", len(resolved))
	}
	if len(resolved[1].Products) != 2 {
		t.Errorf("group 1 should resolve both products, got %d", len(resolved[1].Products))
	}
	// Groups 0 and 2 resolve to nothing but still keep their slots.
	if len(resolved[0].Products) != 0 || len(resolved[2].Products) != 0 {
		t.Error("unresolvable groups should resolve to empty product lists, not disappear")
	}
}

// Size is validated on the raw group before fetching, deliberately not again
// after resolution, so a group can surface with fewer than 2 products. This
// pins that behavior.
func TestMaterializeKeepsUnderfilledGroups(t *testing.T) {
	groups := []models.CandidateGroup{{1, 998, 999}}
	fetched := []models.ProductDescriptor{{ID: 1, Name: "Survivor"}}

	resolved := Materialize(groups, fetched)
	bundle := resolved[0]
	if len(bundle.Products) != 1 {
		t.Fatalf("expected the single surviving product to be kept, got %d", len(bundle.Products))
	}
	if bundle.Products[0].Name != "Survivor" {
		t.Errorf("unexpected survivor: %+v", bundle.Products[0])
	}
}

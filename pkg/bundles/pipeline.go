// Package bundles implements the AI bundle-generation pipeline: snapshot
// fetching, grouping, materialization, and the sequential commit loop.
package bundles

import (
	"context"

	"github.com/bundlewise/go-api/pkg/ai"
	"github.com/bundlewise/go-api/pkg/models"
)

// Catalog is the read side of the platform collaborator.
type Catalog interface {
	GetProducts(ctx context.Context, companyID string, ids []int) ([]models.ProductDescriptor, error)
	GetProductDetails(ctx context.Context, companyID string, ids []int) ([]models.ProductDetail, error)
	GetProductBundleDetail(ctx context.Context, companyID string, bundleID int) (*models.BundleDetail, error)
}

// Committer is the write side of the platform collaborator.
type Committer interface {
	CreateProductBundle(ctx context.Context, companyID string, payload models.BundleCreationPayload) error
	UpdateProductBundle(ctx context.Context, companyID string, bundleID int, updates map[string]any) error
	UploadMedia(ctx context.Context, companyID, imageBase64 string) (string, error)
}

// Generator is the generative-AI collaborator.
type Generator interface {
	GenerateCompletion(ctx context.Context, systemMessage, userMessage string) (string, error)
	GenerateJSON(ctx context.Context, systemMessage, userMessage, schemaName string, schema map[string]any) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Pipeline wires the collaborators together. One instance is built at
// startup; all state below is request-scoped.
type Pipeline struct {
	Catalog  Catalog
	Platform Committer
	AI       Generator
}

// GenerateBundles runs the grouping pipeline: fetch snapshots, ask the model
// for id-groups, parse/filter, and resolve ids back to products. The result
// is keyed by the model's original group position.
func (p *Pipeline) GenerateBundles(ctx context.Context, companyID string, productIDs []int, userPrompt string) (map[int]models.ResolvedBundle, error) {
	products, err := FetchSnapshots(ctx, p.Catalog, companyID, productIDs)
	if err != nil {
		return nil, err
	}

	raw, err := p.AI.GenerateJSON(ctx,
		ai.GroupingSystemPrompt,
		ai.BuildGroupingPrompt(products, userPrompt),
		"bundle_groups",
		ai.GroupingSchema(),
	)
	if err != nil {
		return nil, err
	}

	groups, err := ai.ParseGroups(raw)
	if err != nil {
		return nil, err
	}

	return Materialize(groups, products), nil
}

// GenerateName produces a name for an existing platform bundle. A non-empty
// oldName switches the prompt into rename mode.
func (p *Pipeline) GenerateName(ctx context.Context, companyID string, bundleID int, oldName string) (string, error) {
	detail, err := p.Catalog.GetProductBundleDetail(ctx, companyID, bundleID)
	if err != nil {
		return "", err
	}

	raw, err := p.AI.GenerateCompletion(ctx, ai.NamingSystemPrompt, ai.BuildNamingPrompt(detail.Products, oldName))
	if err != nil {
		return "", err
	}
	return ai.ParseName(raw)
}

// GenerateImage produces a base64 logo for an existing platform bundle.
func (p *Pipeline) GenerateImage(ctx context.Context, companyID string, bundleID int, additionalPrompt string) (string, error) {
	detail, err := p.Catalog.GetProductBundleDetail(ctx, companyID, bundleID)
	if err != nil {
		return "", err
	}
	return p.AI.GenerateImage(ctx, ai.BuildImagePrompt(detail.Products, additionalPrompt))
}

package bundles

import (
	"context"

	"github.com/bundlewise/go-api/pkg/ai"
	"github.com/bundlewise/go-api/pkg/models"
)

// CommitBundles creates one platform bundle per id-group, strictly
// sequentially: each candidate's naming, image, upload, and create calls
// finish before the next candidate starts. Stage failures are handled per
// the policy table; a returned error means the batch was aborted and the
// partial result describes only what happened before the abort.
//
// Input shape (non-empty array of non-empty int arrays) is validated by the
// handler before any external call is made.
func (p *Pipeline) CommitBundles(ctx context.Context, companyID string, bundlesData [][]int, additionalPrompt string) (*models.CommitResult, error) {
	result := &models.CommitResult{}

	for _, ids := range bundlesData {
		details, err := p.Catalog.GetProductDetails(ctx, companyID, ids)
		if err != nil {
			if abort := p.recordFailure(result, placeholderPayload(ids), StageDetailFetch, err); abort != nil {
				return result, abort
			}
			continue
		}

		name, err := p.nameBundle(ctx, details)
		if err != nil {
			if abort := p.recordFailure(result, placeholderPayload(ids), StageNaming, err); abort != nil {
				return result, abort
			}
			continue
		}

		payload := buildPayload(name, details)

		imageBase64, err := p.AI.GenerateImage(ctx, ai.BuildImagePrompt(details, additionalPrompt))
		if err != nil {
			if abort := p.recordFailure(result, payload, StageImage, err); abort != nil {
				return result, abort
			}
			continue
		}

		logoURL, err := p.Platform.UploadMedia(ctx, companyID, imageBase64)
		if err != nil {
			if abort := p.recordFailure(result, payload, StageUpload, err); abort != nil {
				return result, abort
			}
			continue
		}
		payload.Logo = logoURL

		if err := p.Platform.CreateProductBundle(ctx, companyID, payload); err != nil {
			if abort := p.recordFailure(result, payload, StageCreate, err); abort != nil {
				return result, abort
			}
			continue
		}

		result.Created = append(result.Created, payload)
	}

	return result, nil
}

func (p *Pipeline) nameBundle(ctx context.Context, details []models.ProductDetail) (string, error) {
	raw, err := p.AI.GenerateCompletion(ctx, ai.NamingSystemPrompt, ai.BuildNamingPrompt(details, ""))
	if err != nil {
		return "", err
	}
	return ai.ParseName(raw)
}

// recordFailure applies the stage's policy: nil return means the failure was
// recorded and the loop continues; a FatalStageError return aborts the batch.
func (p *Pipeline) recordFailure(result *models.CommitResult, payload models.BundleCreationPayload, stage Stage, err error) error {
	if PolicyFor(stage) == PolicyAbort {
		return &FatalStageError{Stage: stage, Cause: err}
	}
	result.Failed = append(result.Failed, models.FailedBundle{
		Payload: payload,
		Reason:  err.Error(),
	})
	return nil
}

func buildPayload(name string, details []models.ProductDetail) models.BundleCreationPayload {
	products := make([]models.BundlePayloadProduct, 0, len(details))
	for _, d := range details {
		products = append(products, models.BundlePayloadProduct{
			ProductUID:  d.ID,
			MinQuantity: 1,
			MaxQuantity: 1,
		})
	}
	return models.BundleCreationPayload{
		Name:     name,
		Slug:     Slugify(name),
		Products: products,
		Choice:   "single",
		IsActive: false,
	}
}

// placeholderPayload stands in for bundles that failed before a name
// existed, so the failed entry still identifies its products.
func placeholderPayload(ids []int) models.BundleCreationPayload {
	products := make([]models.BundlePayloadProduct, 0, len(ids))
	for _, id := range ids {
		products = append(products, models.BundlePayloadProduct{
			ProductUID:  id,
			MinQuantity: 1,
			MaxQuantity: 1,
		})
	}
	return models.BundleCreationPayload{
		Name:     "(unnamed bundle)",
		Products: products,
		Choice:   "single",
	}
}

package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bundlewise/go-api/pkg/bundles"
	"github.com/bundlewise/go-api/pkg/global"
	"github.com/bundlewise/go-api/pkg/models"
)

// GenerateBundles runs the grouping pipeline over the merchant's selected
// products. The response maps the AI's original group index to the resolved
// products for that group.
func (d *Dependencies) GenerateBundles(c *gin.Context) {
	var req models.GenerateBundlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "productIds", Message: "productIds must be a non-empty array of product ids", Code: "validation_error"},
		}))
		return
	}

	companyID := sessionCompanyID(c, req.CompanyID)
	resolved, err := d.Pipeline.GenerateBundles(c.Request.Context(), companyID, req.ProductIDs, req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make(map[int][]models.ProductDescriptor, len(resolved))
	for idx, bundle := range resolved {
		data[idx] = bundle.Products
	}

	// An empty result after filtering is reported as 204 with a body. That
	// is how the frontend already distinguishes "nothing groupable" from an
	// error, so it stays.
	if len(data) == 0 {
		c.JSON(http.StatusNoContent, global.SuccessResponse(data))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(data))
}

// CreateBundles runs the commit loop. Partial per-bundle failures still
// answer 200; only malformed input or a fatal image failure answers 400.
func (d *Dependencies) CreateBundles(c *gin.Context) {
	var req models.CreateBundlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "bundlesData", Message: "bundlesData must be a non-empty array of product id arrays", Code: "validation_error"},
		}))
		return
	}
	for _, group := range req.BundlesData {
		if len(group) == 0 {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
				{Field: "bundlesData", Message: "bundlesData must not contain empty product id arrays", Code: "validation_error"},
			}))
			return
		}
	}

	companyID := sessionCompanyID(c, req.CompanyID)
	result, err := d.Pipeline.CommitBundles(c.Request.Context(), companyID, req.BundlesData, req.AdditionalPrompt)
	if err != nil {
		var fatal *bundles.FatalStageError
		if errors.As(err, &fatal) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse(fatal.Cause.Error(), nil))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.MessageResponse(result, result.Summary()))
}

// GenerateName is the naming-only path for an existing bundle.
func (d *Dependencies) GenerateName(c *gin.Context) {
	var req models.GenerateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "bundleId", Message: "bundleId is required", Code: "validation_error"},
		}))
		return
	}

	companyID := sessionCompanyID(c, req.CompanyID)
	name, err := d.Pipeline.GenerateName(c.Request.Context(), companyID, req.BundleID, req.OldName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(name))
}

// GenerateImage is the logo-only path for an existing bundle.
func (d *Dependencies) GenerateImage(c *gin.Context) {
	var req models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "bundleId", Message: "bundleId is required", Code: "validation_error"},
		}))
		return
	}

	companyID := sessionCompanyID(c, req.CompanyID)
	imageBase64, err := d.Pipeline.GenerateImage(c.Request.Context(), companyID, req.BundleID, req.AdditionalPrompt)
	if err != nil {
		// Image faults surface as 400 with the upstream message, matching
		// the commit loop's fatal image semantics.
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(imageBase64))
}

// UpdateBundle mutates an existing bundle directly, no AI involved.
func (d *Dependencies) UpdateBundle(c *gin.Context) {
	var req models.UpdateBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "bundleId", Message: "bundleId is required", Code: "validation_error"},
		}))
		return
	}
	if req.Name == "" && req.ImageBase64 == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No updates provided", []global.ValidationError{
			{Field: "body", Message: "name or imageBase64 must be provided", Code: "empty_updates"},
		}))
		return
	}

	companyID := sessionCompanyID(c, req.CompanyID)
	ctx := c.Request.Context()
	updates := map[string]any{}

	if req.Name != "" {
		updates["name"] = req.Name
		updates["slug"] = bundles.Slugify(req.Name)
	}
	if req.ImageBase64 != "" {
		logoURL, err := d.Platform.UploadMedia(ctx, companyID, req.ImageBase64)
		if err != nil {
			respondError(c, err)
			return
		}
		updates["logo"] = logoURL
	}

	if err := d.Platform.UpdateProductBundle(ctx, companyID, req.BundleID, updates); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(updates))
}

// PromptSuggestions is best-effort: every failure path degrades to the
// static suggestion list with fallback set, never an error response.
func (d *Dependencies) PromptSuggestions(c *gin.Context) {
	var req models.PromptSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "productIds", Message: "productIds must be a non-empty array of product ids", Code: "validation_error"},
		}))
		return
	}

	companyID := sessionCompanyID(c, req.CompanyID)
	ctx := c.Request.Context()

	if cached, err := d.Suggestions.GetSuggestions(ctx, companyID, req.ProductIDs); err == nil && len(cached) > 0 {
		c.JSON(http.StatusOK, suggestionResponse(cached, false))
		return
	}

	suggestions, fallback := d.Pipeline.Suggest(ctx, companyID, req.ProductIDs)
	if !fallback {
		if err := d.Suggestions.SaveSuggestions(ctx, companyID, req.ProductIDs, suggestions); err != nil {
			c.Error(err)
		}
	}
	c.JSON(http.StatusOK, suggestionResponse(suggestions, fallback))
}

func suggestionResponse(suggestions []string, fallback bool) map[string]any {
	return map[string]any{
		"success":  true,
		"data":     suggestions,
		"fallback": fallback,
	}
}

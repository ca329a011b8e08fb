package models

// Request bodies for the bundle endpoints. Field names follow the wire
// contract the frontend already speaks, camelCase and snake_case mixed.

type GenerateBundlesRequest struct {
	ProductIDs []int  `json:"productIds" binding:"required,min=1"`
	CompanyID  string `json:"company_id"`
	Prompt     string `json:"prompt"`
}

type CreateBundlesRequest struct {
	BundlesData      [][]int `json:"bundlesData" binding:"required,min=1"`
	CompanyID        string  `json:"company_id"`
	AdditionalPrompt string  `json:"additionalPrompt"`
}

type GenerateNameRequest struct {
	CompanyID string `json:"company_id"`
	BundleID  int    `json:"bundleId" binding:"required"`
	OldName   string `json:"oldName"`
}

type GenerateImageRequest struct {
	CompanyID        string `json:"company_id"`
	BundleID         int    `json:"bundleId" binding:"required"`
	AdditionalPrompt string `json:"additionalPrompt"`
}

type UpdateBundleRequest struct {
	CompanyID   string `json:"company_id"`
	BundleID    int    `json:"bundleId" binding:"required"`
	Name        string `json:"name"`
	ImageBase64 string `json:"imageBase64"`
}

type PromptSuggestionsRequest struct {
	ProductIDs []int  `json:"productIds" binding:"required,min=1"`
	CompanyID  string `json:"company_id"`
}

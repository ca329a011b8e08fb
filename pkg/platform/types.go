package platform

import (
	"fmt"

	"github.com/bundlewise/go-api/pkg/models"
)

// UpstreamError carries the platform's own status code and message. A call
// that failed before any HTTP status was produced reports 500.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("platform error (%d): %s", e.Status, e.Message)
}

// Wire shapes as the platform returns them. Fields the extension does not
// use are left out; absent fields decode to zero values and are handled at
// the mapping boundary below, never in business logic.

type productPage struct {
	Items []wireProduct `json:"items"`
	Page  struct {
		Current int  `json:"current"`
		HasNext bool `json:"has_next"`
	} `json:"page"`
}

type wireProduct struct {
	UID         int         `json:"uid"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Medias      []wireMedia `json:"medias"`
}

type wireMedia struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type wireBundle struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Slug     string        `json:"slug"`
	Logo     string        `json:"logo"`
	Products []wireProduct `json:"products"`
}

type wireApplication struct {
	CompanyID int  `json:"company_id"`
	Active    bool `json:"active"`
}

type mediaUploadResult struct {
	CDN struct {
		URL string `json:"url"`
	} `json:"cdn"`
}

func (w wireProduct) toDescriptor() models.ProductDescriptor {
	return models.ProductDescriptor{
		ID:          w.UID,
		Name:        w.Name,
		Description: w.Description,
	}
}

func (w wireProduct) toDetail() models.ProductDetail {
	detail := models.ProductDetail{
		ID:          w.UID,
		Name:        w.Name,
		Description: w.Description,
	}
	for _, m := range w.Medias {
		if m.Type != "" && m.Type != "image" {
			continue
		}
		if m.URL != "" {
			detail.Images = append(detail.Images, m.URL)
		}
	}
	return detail
}

func (w wireBundle) toDetail() *models.BundleDetail {
	detail := &models.BundleDetail{
		ID:   w.ID,
		Name: w.Name,
		Slug: w.Slug,
		Logo: w.Logo,
	}
	for _, p := range w.Products {
		detail.Products = append(detail.Products, p.toDetail())
	}
	return detail
}

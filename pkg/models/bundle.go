package models

import (
	"fmt"
	"strings"
)

// ProductDescriptor is the minimal catalog projection used by the grouping
// pipeline. It is rebuilt from the platform on every request and never stored.
type ProductDescriptor struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProductDetail is the richer projection fetched at commit time for naming
// and logo context.
type ProductDetail struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// CandidateGroup is one id-group emitted by the grouping model. Only groups
// of 2 to 9 ids survive parsing.
type CandidateGroup []int

// ResolvedBundle pairs a candidate group with the catalog products that could
// actually be resolved for it. Ids with no matching product are omitted.
type ResolvedBundle struct {
	Products    []ProductDescriptor `json:"products"`
	SourceGroup CandidateGroup      `json:"source_group"`
}

// BundleDetail is an existing platform bundle, fetched for the standalone
// naming and image endpoints.
type BundleDetail struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Logo     string          `json:"logo"`
	Products []ProductDetail `json:"products"`
}

type BundlePayloadProduct struct {
	ProductUID  int `json:"product_uid"`
	MinQuantity int `json:"min_quantity"`
	MaxQuantity int `json:"max_quantity"`
}

// BundleCreationPayload is the exact create-bundle body sent to the platform.
// Bundles are created inactive so the merchant can review before publishing.
type BundleCreationPayload struct {
	Name     string                 `json:"name"`
	Slug     string                 `json:"slug"`
	Products []BundlePayloadProduct `json:"products"`
	Choice   string                 `json:"choice"`
	IsActive bool                   `json:"is_active"`
	Logo     string                 `json:"logo,omitempty"`
}

type FailedBundle struct {
	Payload BundleCreationPayload `json:"payload"`
	Reason  string                `json:"reason"`
}

// CommitResult accumulates per-bundle outcomes over one commit batch. It
// lives for a single request and is discarded after the response is written.
type CommitResult struct {
	Created []BundleCreationPayload `json:"created"`
	Failed  []FailedBundle          `json:"failed"`
}

// Summary renders the human-readable outcome line returned to the frontend.
func (r *CommitResult) Summary() string {
	if len(r.Failed) == 0 {
		return fmt.Sprintf("Created %d bundle(s) successfully", len(r.Created))
	}

	names := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		names = append(names, fmt.Sprintf("%s (%s)", f.Payload.Name, f.Reason))
	}
	return fmt.Sprintf("Created %d bundle(s), %d failed: %s",
		len(r.Created), len(r.Failed), strings.Join(names, "; "))
}

package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bundlewise/go-api/pkg/models"
)

// Client talks to the e-commerce platform's partner API: catalog reads,
// bundle CRUD, session validation, and media upload. Every call is a single
// attempt; failures surface as UpstreamError with the platform's status.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClientFromEnv() *Client {
	return &Client{
		baseURL: strings.TrimRight(os.Getenv("PLATFORM_API_BASE"), "/"),
		token:   os.Getenv("PLATFORM_API_TOKEN"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// GetProducts fetches snapshot descriptors for exactly the given ids. The
// ids are explicit, so a single page sized to the id count is requested and
// no pagination loop is needed.
func (c *Client) GetProducts(ctx context.Context, companyID string, ids []int) ([]models.ProductDescriptor, error) {
	page, err := c.fetchProductPage(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProductDescriptor, 0, len(page.Items))
	for _, item := range page.Items {
		out = append(out, item.toDescriptor())
	}
	return out, nil
}

// GetProductDetails fetches the richer projection (descriptions plus image
// URLs) used for naming and logo context at commit time.
func (c *Client) GetProductDetails(ctx context.Context, companyID string, ids []int) ([]models.ProductDetail, error) {
	page, err := c.fetchProductPage(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProductDetail, 0, len(page.Items))
	for _, item := range page.Items {
		out = append(out, item.toDetail())
	}
	return out, nil
}

func (c *Client) fetchProductPage(ctx context.Context, companyID string, ids []int) (*productPage, error) {
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(len(ids)))
	query.Set("page_no", "1")
	for _, id := range ids {
		query.Add("item_ids", strconv.Itoa(id))
	}

	var page productPage
	path := fmt.Sprintf("/company/%s/products", companyID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetProductBundle returns a bundle summary.
func (c *Client) GetProductBundle(ctx context.Context, companyID string, bundleID int) (*models.BundleDetail, error) {
	var bundle wireBundle
	path := fmt.Sprintf("/company/%s/product-bundle/%d", companyID, bundleID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &bundle); err != nil {
		return nil, err
	}
	return bundle.toDetail(), nil
}

// GetProductBundleDetail returns a bundle with its full product projections,
// used as context for the standalone naming and image endpoints.
func (c *Client) GetProductBundleDetail(ctx context.Context, companyID string, bundleID int) (*models.BundleDetail, error) {
	var bundle wireBundle
	path := fmt.Sprintf("/company/%s/product-bundle/%d/detail", companyID, bundleID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &bundle); err != nil {
		return nil, err
	}
	return bundle.toDetail(), nil
}

func (c *Client) CreateProductBundle(ctx context.Context, companyID string, payload models.BundleCreationPayload) error {
	path := fmt.Sprintf("/company/%s/product-bundle", companyID)
	return c.do(ctx, http.MethodPost, path, nil, payload, nil)
}

func (c *Client) UpdateProductBundle(ctx context.Context, companyID string, bundleID int, updates map[string]any) error {
	path := fmt.Sprintf("/company/%s/product-bundle/%d", companyID, bundleID)
	return c.do(ctx, http.MethodPut, path, nil, updates, nil)
}

// GetApplications validates a platform session token and resolves the
// company it belongs to.
func (c *Client) GetApplications(ctx context.Context, sessionToken string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/applications", nil, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Platform-Session", sessionToken)

	var app wireApplication
	if err := c.send(req, &app); err != nil {
		return "", err
	}
	if !app.Active || app.CompanyID == 0 {
		return "", &UpstreamError{Status: http.StatusUnauthorized, Message: "invalid platform session"}
	}
	return strconv.Itoa(app.CompanyID), nil
}

// UploadMedia pushes a base64 image to the platform's media host and returns
// the stable CDN URL.
func (c *Client) UploadMedia(ctx context.Context, companyID, imageBase64 string) (string, error) {
	body := map[string]string{"content": imageBase64, "content_type": "image/png"}

	var result mediaUploadResult
	path := fmt.Sprintf("/company/%s/media/upload", companyID)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &result); err != nil {
		return "", err
	}
	if result.CDN.URL == "" {
		return "", &UpstreamError{Status: http.StatusInternalServerError, Message: "media upload returned no URL"}
	}
	return result.CDN.URL, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &UpstreamError{Status: http.StatusInternalServerError, Message: err.Error()}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &UpstreamError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &UpstreamError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{Status: http.StatusInternalServerError, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Status: resp.StatusCode, Message: upstreamMessage(data, resp.StatusCode)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &UpstreamError{Status: http.StatusInternalServerError, Message: "unexpected platform response: " + err.Error()}
		}
	}
	return nil
}

// upstreamMessage prefers the platform's own message field so the frontend
// sees the collaborator's error text verbatim.
func upstreamMessage(data []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(status)
}

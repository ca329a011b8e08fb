package router

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bundlewise/go-api/pkg/bundles"
	"github.com/bundlewise/go-api/pkg/models"
)

// In-memory fakes for the handler dependencies.

type fakePlatform struct {
	createErr   error
	imageUpload string

	mu      sync.Mutex
	created []models.BundleCreationPayload
}

func (f *fakePlatform) GetProducts(_ context.Context, _ string, ids []int) ([]models.ProductDescriptor, error) {
	out := make([]models.ProductDescriptor, len(ids))
	for i, id := range ids {
		out[i] = models.ProductDescriptor{ID: id, Name: fmt.Sprintf("Product %d", id)}
	}
	return out, nil
}

func (f *fakePlatform) GetProductDetails(_ context.Context, _ string, ids []int) ([]models.ProductDetail, error) {
	out := make([]models.ProductDetail, len(ids))
	for i, id := range ids {
		out[i] = models.ProductDetail{ID: id, Name: fmt.Sprintf("Product %d", id)}
	}
	return out, nil
}

func (f *fakePlatform) GetProductBundleDetail(_ context.Context, _ string, id int) (*models.BundleDetail, error) {
	return &models.BundleDetail{ID: id, Name: "Bundle"}, nil
}

func (f *fakePlatform) CreateProductBundle(_ context.Context, _ string, payload models.BundleCreationPayload) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	f.created = append(f.created, payload)
	f.mu.Unlock()
	return nil
}

func (f *fakePlatform) UpdateProductBundle(_ context.Context, _ string, _ int, _ map[string]any) error {
	return nil
}

func (f *fakePlatform) UploadMedia(_ context.Context, _, _ string) (string, error) {
	if f.imageUpload != "" {
		return f.imageUpload, nil
	}
	return "http://cdn/logo.png", nil
}

type fakeAI struct {
	groups   string
	imageErr error
}

func (f *fakeAI) GenerateCompletion(_ context.Context, _, _ string) (string, error) {
	return "Test Bundle", nil
}

func (f *fakeAI) GenerateJSON(_ context.Context, _, _, _ string, _ map[string]any) (string, error) {
	if f.groups == "" {
		return "[]", nil
	}
	return f.groups, nil
}

func (f *fakeAI) GenerateImage(_ context.Context, _ string) (string, error) {
	if f.imageErr != nil {
		return "", f.imageErr
	}
	return "aW1hZ2U=", nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]string
}

func (f *fakeSessions) GetSession(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if companyID, ok := f.sessions[token]; ok {
		return companyID, nil
	}
	return "", errors.New("cache miss")
}

func (f *fakeSessions) SaveSession(_ context.Context, token, companyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sessions == nil {
		f.sessions = map[string]string{}
	}
	f.sessions[token] = companyID
	return nil
}

type fakeAuth struct{ err error }

func (f *fakeAuth) GetApplications(_ context.Context, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "1", nil
}

type fakeSuggestionCache struct{}

func (fakeSuggestionCache) GetSuggestions(_ context.Context, _ string, _ []int) ([]string, error) {
	return nil, errors.New("cache miss")
}

func (fakeSuggestionCache) SaveSuggestions(_ context.Context, _ string, _ []int, _ []string) error {
	return nil
}

type fakeKeywords struct {
	mu      sync.Mutex
	records []models.CartKeywordRecord
}

func (f *fakeKeywords) LogCartKeywords(_ context.Context, record models.CartKeywordRecord) error {
	f.mu.Lock()
	f.records = append(f.records, record)
	f.mu.Unlock()
	return nil
}

func newTestDeps(platform *fakePlatform, aiStub *fakeAI) *Dependencies {
	if platform == nil {
		platform = &fakePlatform{}
	}
	if aiStub == nil {
		aiStub = &fakeAI{}
	}
	return &Dependencies{
		Pipeline: &bundles.Pipeline{
			Catalog:  platform,
			Platform: platform,
			AI:       aiStub,
		},
		Platform:      platform,
		Sessions:      &fakeSessions{sessions: map[string]string{"tok": "1"}},
		Auth:          &fakeAuth{},
		Suggestions:   fakeSuggestionCache{},
		Keywords:      &fakeKeywords{},
		WebhookSecret: "secret",
	}
}

func setupRouter(t *testing.T, deps *Dependencies) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Router = gin.New()
	InitializeRoutes(deps)
}

func doJSON(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	Router.ServeHTTP(w, req)
	return w
}

var sessionHeader = map[string]string{"X-Platform-Session": "tok"}

func TestGenerateBundlesEndpoint(t *testing.T) {
	setupRouter(t, newTestDeps(nil, &fakeAI{groups: "[[10,11],[12]]"}))

	w := doJSON(http.MethodPost, "/api/bundle/generate_bundles",
		`{"productIds":[10,11,12],"company_id":"1","prompt":""}`, sessionHeader)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool                                  `json:"success"`
		Data    map[string][]models.ProductDescriptor `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !resp.Success || len(resp.Data) != 1 {
		t.Fatalf("expected one surviving group, got %+v", resp)
	}
	if products := resp.Data["0"]; len(products) != 2 {
		t.Errorf("group 0 should resolve two products, got %+v", products)
	}
}

// No surviving group answers 204 but still carries a JSON body. Nonstandard,
// preserved for the existing frontend.
func TestGenerateBundlesEmptyAnswers204(t *testing.T) {
	setupRouter(t, newTestDeps(nil, &fakeAI{groups: "[[12]]"}))

	w := doJSON(http.MethodPost, "/api/bundle/generate_bundles",
		`{"productIds":[12],"company_id":"1"}`, sessionHeader)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestGenerateBundlesValidation(t *testing.T) {
	setupRouter(t, newTestDeps(nil, nil))

	for _, body := range []string{
		`{"company_id":"1"}`,
		`{"productIds":[],"company_id":"1"}`,
		`{"productIds":"nope","company_id":"1"}`,
	} {
		w := doJSON(http.MethodPost, "/api/bundle/generate_bundles", body, sessionHeader)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestCreateBundlesRejectsEmptyInnerArrays(t *testing.T) {
	setupRouter(t, newTestDeps(nil, nil))

	w := doJSON(http.MethodPost, "/api/bundle/create_bundles",
		`{"bundlesData":[[1,2],[]],"company_id":"1"}`, sessionHeader)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateBundlesPartialFailureStill200(t *testing.T) {
	platform := &fakePlatform{createErr: errors.New("slug taken")}
	setupRouter(t, newTestDeps(platform, nil))

	w := doJSON(http.MethodPost, "/api/bundle/create_bundles",
		`{"bundlesData":[[1,2]],"company_id":"1"}`, sessionHeader)

	if w.Code != http.StatusOK {
		t.Fatalf("partial commit failure must answer 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "slug taken") {
		t.Errorf("response should carry the failure reason: %s", w.Body.String())
	}
}

func TestCreateBundlesImageFailureAnswers400(t *testing.T) {
	platform := &fakePlatform{}
	setupRouter(t, newTestDeps(platform, &fakeAI{imageErr: errors.New("image quota exceeded")}))

	w := doJSON(http.MethodPost, "/api/bundle/create_bundles",
		`{"bundlesData":[[1,2],[3,4]],"company_id":"1"}`, sessionHeader)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("fatal image failure must answer 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "image quota exceeded") {
		t.Errorf("response should carry the upstream image error: %s", w.Body.String())
	}
	if len(platform.created) != 0 {
		t.Errorf("no bundle may be created after image failure, got %d", len(platform.created))
	}
}

func TestSessionMiddleware(t *testing.T) {
	setupRouter(t, newTestDeps(nil, nil))

	// Missing header
	w := doJSON(http.MethodPost, "/api/bundle/prompt_suggestions",
		`{"productIds":[1,2],"company_id":"1"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing session header must answer 401, got %d", w.Code)
	}

	// Unknown token falls through to the platform lookup, which succeeds
	w = doJSON(http.MethodPost, "/api/bundle/prompt_suggestions",
		`{"productIds":[1,2],"company_id":"1"}`, map[string]string{"X-Platform-Session": "fresh"})
	if w.Code != http.StatusOK {
		t.Errorf("valid fresh session should pass, got %d", w.Code)
	}
}

func TestPromptSuggestionsFallsBack(t *testing.T) {
	// Default fakeAI answers "Test Bundle" for completions, which is not a
	// JSON array, so the handler serves the static list with fallback set.
	setupRouter(t, newTestDeps(nil, nil))

	w := doJSON(http.MethodPost, "/api/bundle/prompt_suggestions",
		`{"productIds":[1,2],"company_id":"1"}`, sessionHeader)

	if w.Code != http.StatusOK {
		t.Fatalf("suggestions are best-effort and must answer 200, got %d", w.Code)
	}

	var resp struct {
		Success  bool     `json:"success"`
		Data     []string `json:"data"`
		Fallback bool     `json:"fallback"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !resp.Fallback || len(resp.Data) == 0 {
		t.Errorf("expected static fallback suggestions, got %+v", resp)
	}
}

func TestWebhookSignature(t *testing.T) {
	deps := newTestDeps(nil, nil)
	setupRouter(t, deps)

	body := `{"event":"cart.update","company_id":"1","payload":{"cart_id":"c1","items":[{"product_uid":1,"name":"Green Tea Sampler","quantity":1}]}}`

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte(body))
	signature := hex.EncodeToString(mac.Sum(nil))

	w := doJSON(http.MethodPost, "/webhook-events", body,
		map[string]string{"X-Webhook-Signature": signature})
	if w.Code != http.StatusOK {
		t.Fatalf("valid signature must answer 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(http.MethodPost, "/webhook-events", body,
		map[string]string{"X-Webhook-Signature": "deadbeef"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad signature must answer 401, got %d", w.Code)
	}

	w = doJSON(http.MethodPost, "/webhook-events", body, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing signature must answer 401, got %d", w.Code)
	}
}

func TestExtractKeywords(t *testing.T) {
	items := []models.WebhookCartItem{
		{Name: "Green Tea Sampler"},
		{Name: "Green Mug"},
	}
	keywords := extractKeywords(items)

	want := []string{"green", "tea", "sampler", "mug"}
	if len(keywords) != len(want) {
		t.Fatalf("expected %v, got %v", want, keywords)
	}
	for i, w := range want {
		if keywords[i] != w {
			t.Errorf("keyword %d: expected %q, got %q", i, w, keywords[i])
		}
	}
}

package router

import (
	"context"

	"github.com/bundlewise/go-api/pkg/bundles"
	"github.com/bundlewise/go-api/pkg/models"
)

// SessionCache caches resolved platform sessions between requests.
type SessionCache interface {
	GetSession(ctx context.Context, token string) (string, error)
	SaveSession(ctx context.Context, token, companyID string) error
}

// SessionAuthority validates a session token against the platform and
// returns the company it belongs to.
type SessionAuthority interface {
	GetApplications(ctx context.Context, sessionToken string) (string, error)
}

// SuggestionCache caches AI suggestion lists per product selection.
type SuggestionCache interface {
	GetSuggestions(ctx context.Context, companyID string, productIDs []int) ([]string, error)
	SaveSuggestions(ctx context.Context, companyID string, productIDs []int, suggestions []string) error
}

// KeywordLogger appends webhook-derived cart keyword records.
type KeywordLogger interface {
	LogCartKeywords(ctx context.Context, record models.CartKeywordRecord) error
}

// Pinger covers the stores checked by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain ping function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// Dependencies holds everything the handlers need, built once at startup.
type Dependencies struct {
	Pipeline      *bundles.Pipeline
	Platform      bundles.Committer
	Sessions      SessionCache
	Auth          SessionAuthority
	Suggestions   SuggestionCache
	Keywords      KeywordLogger
	Health        []Pinger
	WebhookSecret string
}

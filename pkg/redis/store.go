package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	redisclient "github.com/redis/go-redis/v9"
)

const (
	sessionTTL    = 30 * time.Minute
	suggestionTTL = 1 * time.Hour
)

// Store caches resolved platform sessions and AI suggestion lists.
type Store struct {
	client *redisclient.Client
}

func NewStore(client *redisclient.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// GetSession returns the company id cached for a platform session token.
func (s *Store) GetSession(ctx context.Context, token string) (string, error) {
	return s.client.Get(ctx, sessionKey(token)).Result()
}

// SaveSession caches a validated session token against its company id.
func (s *Store) SaveSession(ctx context.Context, token, companyID string) error {
	return s.client.Set(ctx, sessionKey(token), companyID, sessionTTL).Err()
}

// GetSuggestions returns the cached suggestion list for a product-id set.
func (s *Store) GetSuggestions(ctx context.Context, companyID string, productIDs []int) ([]string, error) {
	data, err := s.client.Get(ctx, suggestionKey(companyID, productIDs)).Result()
	if err != nil {
		return nil, err
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(data), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached suggestions: %w", err)
	}
	return suggestions, nil
}

// SaveSuggestions caches an AI suggestion list for a product-id set.
func (s *Store) SaveSuggestions(ctx context.Context, companyID string, productIDs []int, suggestions []string) error {
	data, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	return s.client.Set(ctx, suggestionKey(companyID, productIDs), data, suggestionTTL).Err()
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// suggestionKey is stable across id orderings so the same selection hits the
// same cache entry.
func suggestionKey(companyID string, productIDs []int) string {
	ids := make([]int, len(productIDs))
	copy(ids, productIDs)
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("suggestions:%s:%s", companyID, strings.Join(parts, ","))
}

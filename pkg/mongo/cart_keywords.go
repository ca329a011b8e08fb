package mongo

import (
	"context"
	"time"

	"github.com/bundlewise/go-api/pkg/models"
)

const cartKeywordsCollection = "cart_keywords"

// KeywordStore appends cart keyword records extracted from platform
// webhooks. Insert-only; nothing in the bundle pipeline reads it back.
type KeywordStore struct{}

func NewKeywordStore() *KeywordStore {
	return &KeywordStore{}
}

func (s *KeywordStore) LogCartKeywords(ctx context.Context, record models.CartKeywordRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := GetCollection(cartKeywordsCollection).InsertOne(ctx, record)
	return err
}

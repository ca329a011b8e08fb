package mongo

import (
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/bundlewise/go-api/pkg/global"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Cart keyword log: company feed, newest first
	{
		CollectionName: cartKeywordsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "company_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_company_created"),
		},
	},
	// Keyword lookups across companies
	{
		CollectionName: cartKeywordsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "keywords", Value: 1}},
			Options: options.Index().SetName("idx_keywords"),
		},
	},
}

func EnsureIndexes() error {
	for _, idxConfig := range requiredIndexes {
		collection := GetCollection(idxConfig.CollectionName)
		ctx, cancel := global.GetDefaultTimer()
		defer cancel()

		indexName, err := collection.Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			log.Printf("Error creating index on collection %s: %v",
				idxConfig.CollectionName, err)
			return err
		}

		log.Printf("Created index '%s' on collection '%s'", indexName, idxConfig.CollectionName)
	}
	return nil
}

func EnsureIndexesOnStartup() {
	if err := EnsureIndexes(); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/bundlewise/go-api/internal/router"
	"github.com/bundlewise/go-api/pkg/ai"
	"github.com/bundlewise/go-api/pkg/bundles"
	"github.com/bundlewise/go-api/pkg/global"
	"github.com/bundlewise/go-api/pkg/mongo"
	"github.com/bundlewise/go-api/pkg/platform"
	"github.com/bundlewise/go-api/pkg/redis"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()

	store := redis.NewStore(redis.NewRedisClient())

	aiClient, err := ai.NewClientFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize AI client: %v", err)
	}

	platformClient := platform.NewClientFromEnv()

	pipeline := &bundles.Pipeline{
		Catalog:  platformClient,
		Platform: platformClient,
		AI:       aiClient,
	}

	deps := &router.Dependencies{
		Pipeline:    pipeline,
		Platform:    platformClient,
		Sessions:    store,
		Auth:        platformClient,
		Suggestions: store,
		Keywords:    mongo.NewKeywordStore(),
		Health: []router.Pinger{
			router.PingerFunc(func(ctx context.Context) error {
				return mongo.GetDatabase().Client().Ping(ctx, nil)
			}),
			store,
		},
		WebhookSecret: os.Getenv("PLATFORM_WEBHOOK_SECRET"),
	}

	router.InitEngine()
	router.InitializeRoutes(deps)

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := router.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

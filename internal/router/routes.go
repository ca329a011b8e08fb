package router

func InitializeRoutes(deps *Dependencies) {
	Router.Use(RequestID())

	api := Router.Group("/api")
	{
		api.GET("/health", deps.HealthCheck)

		bundle := api.Group("/bundle")
		bundle.Use(deps.SessionMiddleware())
		{
			bundle.POST("/generate_bundles", deps.GenerateBundles)
			bundle.POST("/create_bundles", deps.CreateBundles)
			bundle.POST("/generate_name", deps.GenerateName)
			bundle.POST("/generate_image", deps.GenerateImage)
			bundle.PUT("/update_bundle", deps.UpdateBundle)
			bundle.POST("/prompt_suggestions", deps.PromptSuggestions)
		}
	}

	Router.POST("/webhook-events", deps.HandleWebhookEvent)
}

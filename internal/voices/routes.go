package voices

import (
	"eto-audiobook-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, voiceService VoiceServiceAPI) {
	voiceController := &VoiceController{Service: voiceService}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/voices", voiceController.ListVoices)
		apiGroup.GET("/voices/all", voiceController.ListAllVoices)
		apiGroup.GET("/voices/tagged", voiceController.ListTaggedVoices)
		apiGroup.GET("/voices/filter-options", voiceController.GetFilterOptions)
		apiGroup.GET("/voices/export", voiceController.ExportCatalog)
		apiGroup.GET("/languages", voiceController.GetLanguages)
	}

	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.POST("/voices/seed", voiceController.SeedVoices)
		adminGroup.POST("/cache/clear", voiceController.ClearCache)
	}
}

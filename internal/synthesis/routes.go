package synthesis

import (
	"eto-audiobook-api/internal/script"
	"eto-audiobook-api/internal/voices"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, synthesisService SynthesisServiceAPI, scriptService script.ScriptServiceAPI, voiceService voices.VoiceServiceAPI) {
	synthesisController := &SynthesisController{
		Service: synthesisService,
		Script:  scriptService,
		Voices:  voiceService,
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/synthesize", synthesisController.Synthesize)
		apiGroup.POST("/preview-voice", synthesisController.PreviewVoice)
		apiGroup.POST("/synthesize-single", synthesisController.SynthesizeSingle)
	}
}

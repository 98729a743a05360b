package script

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, scriptService ScriptServiceAPI) {
	scriptController := &ScriptController{Service: scriptService}

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/detect-roles", scriptController.DetectRoles)
	}
}

package profile

import (
	"tixly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupProfileRoutes(router *gin.RouterGroup, controller Controller) {
	userProfile := router.Group("/profile")
	userProfile.Use(middleware.JWTAuth())
	{
		userProfile.GET("", controller.GetProfile)      // GET /api/v1/profile
		userProfile.PATCH("", controller.UpdateProfile) // PATCH /api/v1/profile
	}
}

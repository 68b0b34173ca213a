package merchant

import (
	"tixly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMerchantRoutes(router *gin.RouterGroup, controller Controller) {
	merchantRoutes := router.Group("/merchant")
	merchantRoutes.Use(middleware.JWTAuth(), middleware.RequireMerchant())
	{
		merchantRoutes.GET("/stats", controller.GetStats)               // GET /api/v1/merchant/stats
		merchantRoutes.GET("/transactions", controller.GetTransactions) // GET /api/v1/merchant/transactions
	}
}

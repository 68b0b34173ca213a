package notifications

import (
	"tixly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(router *gin.RouterGroup, controller Controller) {
	userNotifications := router.Group("/notifications")
	userNotifications.Use(middleware.JWTAuth())
	{
		userNotifications.GET("", controller.ListNotifications)                       // GET /api/v1/notifications?unread=true
		userNotifications.GET("/recent", controller.RecentNotifications)              // GET /api/v1/notifications/recent?limit=10
		userNotifications.PATCH("/:notificationId/read", controller.MarkRead)         // PATCH /api/v1/notifications/:id/read
		userNotifications.POST("/read-all", controller.MarkAllRead)                   // POST /api/v1/notifications/read-all
		userNotifications.DELETE("/:notificationId", controller.DeleteNotification)   // DELETE /api/v1/notifications/:id
	}
}

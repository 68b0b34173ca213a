package tickets

import (
	"tixly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTicketRoutes(router *gin.RouterGroup, controller Controller) {
	RegisterValidations()

	userTickets := router.Group("/tickets")
	userTickets.Use(middleware.JWTAuth())
	{
		userTickets.GET("", controller.ListTickets)                 // GET /api/v1/tickets?search=&status=
		userTickets.GET("/:ticketId", controller.GetTicket)         // GET /api/v1/tickets/:ticketId
		userTickets.GET("/:ticketId/export", controller.ExportTicket) // GET /api/v1/tickets/:ticketId/export
		userTickets.GET("/:ticketId/qr", controller.TicketQr)       // GET /api/v1/tickets/:ticketId/qr
	}
}

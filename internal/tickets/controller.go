package tickets

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tixly/internal/shared/utils/response"
)

type Controller interface {
	ListTickets(c *gin.Context)
	GetTicket(c *gin.Context)
	ExportTicket(c *gin.Context)
	TicketQr(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ListTickets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query TicketListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	list, err := ctrl.service.ListTickets(c.Request.Context(), userID, FilterQuery{
		Search: query.Search,
		Status: query.Status,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load tickets", nil)
		return
	}

	response.Success(c, http.StatusOK, "Tickets retrieved successfully", list)
}

func (ctrl *controller) GetTicket(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ticket ID", err.Error())
		return
	}

	ticket, err := ctrl.service.GetTicket(c.Request.Context(), ticketID, userID)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ticket retrieved successfully", ticket)
}

func (ctrl *controller) ExportTicket(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ticket ID", err.Error())
		return
	}

	payload, err := ctrl.service.ExportTicket(c.Request.Context(), ticketID, userID)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	// The client saves the body as a file
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ticket-%s.json", payload.TicketID))
	c.JSON(http.StatusOK, payload)
}

func (ctrl *controller) TicketQr(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ticket ID", err.Error())
		return
	}

	payload, err := ctrl.service.QrPayload(c.Request.Context(), ticketID, userID)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "QR payload generated successfully", gin.H{
		"payload": payload,
	})
}

func respondTicketError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTicketNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ErrNotTicketOwner):
		response.Error(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, ErrTicketNotConfirmed):
		response.Error(c, http.StatusConflict, err.Error(), nil)
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to load ticket", nil)
	}
}

// currentUserID pulls the authenticated user id set by the JWT middleware
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw.(string))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Invalid user ID format", nil)
		return uuid.Nil, false
	}

	return id, true
}

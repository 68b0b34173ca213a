package notifications

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tixly/internal/shared/utils/response"
)

type Controller interface {
	ListNotifications(c *gin.Context)
	RecentNotifications(c *gin.Context)
	MarkRead(c *gin.Context)
	MarkAllRead(c *gin.Context)
	DeleteNotification(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ListNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	onlyUnread := c.Query("unread") == "true"

	list, err := ctrl.service.List(c.Request.Context(), userID, onlyUnread)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load notifications", nil)
		return
	}

	response.Success(c, http.StatusOK, "Notifications retrieved successfully", list)
}

func (ctrl *controller) RecentNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			response.Error(c, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	list, err := ctrl.service.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load notifications", nil)
		return
	}

	response.Success(c, http.StatusOK, "Recent notifications retrieved successfully", list)
}

func (ctrl *controller) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("notificationId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid notification ID", err.Error())
		return
	}

	if err := ctrl.service.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to mark notification read", nil)
		return
	}

	// Applied optimistically; reconciliation runs in the background
	response.Success(c, http.StatusAccepted, "Notification marked read", nil)
}

func (ctrl *controller) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := ctrl.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to mark notifications read", nil)
		return
	}

	response.Success(c, http.StatusAccepted, "All notifications marked read", nil)
}

func (ctrl *controller) DeleteNotification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("notificationId"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid notification ID", err.Error())
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), userID, notificationID); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete notification", nil)
		return
	}

	response.Success(c, http.StatusAccepted, "Notification deleted", nil)
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

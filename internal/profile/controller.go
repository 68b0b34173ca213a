package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tixly/internal/shared/utils/response"
)

type Controller interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := ctrl.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrProfileNotFound) {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", p)
}

func (ctrl *controller) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	p, err := ctrl.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrProfileNotFound) {
			statusCode = http.StatusNotFound
		}
		response.Error(c, statusCode, err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", p)
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

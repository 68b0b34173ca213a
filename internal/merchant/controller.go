package merchant

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tixly/internal/shared/utils/response"
)

type Controller interface {
	GetStats(c *gin.Context)
	GetTransactions(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetStats(c *gin.Context) {
	merchantID, ok := currentMerchantID(c)
	if !ok {
		return
	}

	stats, err := ctrl.service.GetStats(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load earnings stats", nil)
		return
	}

	response.Success(c, http.StatusOK, "Earnings stats retrieved successfully", stats)
}

func (ctrl *controller) GetTransactions(c *gin.Context) {
	merchantID, ok := currentMerchantID(c)
	if !ok {
		return
	}

	list, err := ctrl.service.GetTransactions(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load transactions", nil)
		return
	}

	response.Success(c, http.StatusOK, "Transactions retrieved successfully", list)
}

// currentMerchantID pulls the authenticated user id set by the JWT middleware
func currentMerchantID(c *gin.Context) (uuid.UUID, bool) {
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

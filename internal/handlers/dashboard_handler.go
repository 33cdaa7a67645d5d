package handlers

import (
	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// Metrics the workspace home screen numbers
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.service.Metrics(c.GetUint("company_id"))
	if err != nil {
		response.ServerError(c, "failed to build dashboard")
		return
	}

	response.Success(c, metrics)
}

package controllers

import (
	"net/http"

	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/dashboard"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

type DashboardController struct {
	service dashboard.Service
	logg    *logger.Logger
}

func NewDashboardController(service dashboard.Service, logg *logger.Logger) *DashboardController {
	return &DashboardController{service: service, logg: logg}
}

func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Stats(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, stats)
}

package controllers

import (
	"net/http"

	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	"github.com/hamzasiddiqui/bazaarline-backend/api/validators"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/audit"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db/models"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/pagination"
)

type AdminAuditController struct {
	repo audit.Repository
	logg *logger.Logger
}

func NewAdminAuditController(repo audit.Repository, logg *logger.Logger) *AdminAuditController {
	return &AdminAuditController{repo: repo, logg: logg}
}

type auditListResult struct {
	Logs       []models.AuditLog  `json:"logs"`
	Pagination pagination.Summary `json:"pagination"`
}

func (c *AdminAuditController) List(w http.ResponseWriter, r *http.Request) {
	filter := audit.ListFilter{
		Action:     validators.ParseQueryString(r, "action"),
		EntityType: validators.ParseQueryString(r, "entityType"),
		Pagination: pagination.FromRequest(r),
	}

	logs, total, err := c.repo.List(r.Context(), filter)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, auditListResult{
		Logs:       logs,
		Pagination: pagination.NewSummary(filter.Pagination, total),
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// organizationHandler handles organization reads.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{
		organizationService: os,
	}
}

// registerOrganizationRoutes registers organization routes.
func registerOrganizationRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationSvcFacade) {
	h := newOrganizationHandler(organizationService)

	rg.GET("", h.getOrganization)
}

// getOrganization godoc
// @Summary Get an organization
// @Description Retrieves the organization the caller's assertion is scoped to
// @Tags organizations
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{orgID} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.organizationService.AuthorizeUserAction(c.Request.Context(), userID, orgID, domain.RoleReadOnly); err != nil {
		respondServiceError(c, logger, err, "Failed to authorize caller")
		return
	}

	org, err := h.organizationService.GetOrganizationByID(c.Request.Context(), orgID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

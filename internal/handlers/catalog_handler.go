package handlers

import (
	"net/http"

	"github.com/commquest/commquest-backend/internal/services"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListModules(c *gin.Context) {
	modules, err := h.catalogService.ListModules(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "", modules)
}

func (h *CatalogHandler) GetModuleSections(c *gin.Context) {
	slug := h.ParseStringIDParam(c, "slug")
	if slug == "" {
		return
	}

	sections, err := h.catalogService.GetModuleSections(c.Request.Context(), slug)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "", sections)
}

func (h *CatalogHandler) GetSectionRules(c *gin.Context) {
	sectionID := h.ParseStringIDParam(c, "sectionId")
	if sectionID == "" {
		return
	}

	rules, err := h.catalogService.GetSectionRules(c.Request.Context(), sectionID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "", rules)
}

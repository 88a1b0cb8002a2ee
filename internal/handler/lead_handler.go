package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"lead_tracker/internal/middleware"
	"lead_tracker/internal/model"
	"lead_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LeadHandler handles lead related requests
type LeadHandler struct {
	service service.LeadService
	logger  *slog.Logger
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(s service.LeadService, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{service: s, logger: logger}
}

// leadParams resolves the caller and the :id path parameter.
// It writes the response itself and returns false when either is unusable.
func leadParams(c *gin.Context) (ownerID, leadID uuid.UUID, ok bool) {
	ownerID, ok = middleware.AuthUserID(c)
	if !ok {
		writeMessage(c, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeMessage(c, http.StatusNotFound, "Lead not found")
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, leadID, true
}

func (h *LeadHandler) CreateLead(c *gin.Context) {
	ownerID, ok := middleware.AuthUserID(c)
	if !ok {
		writeMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	lead, err := h.service.CreateLead(c.Request.Context(), ownerID, req)
	if err != nil {
		writeServiceError(c, h.logger, "create lead", err)
		return
	}
	middleware.RecordLeadCreated()
	c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) ListLeads(c *gin.Context) {
	ownerID, ok := middleware.AuthUserID(c)
	if !ok {
		writeMessage(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, err := h.service.ListLeads(c.Request.Context(), ownerID, c.Request.URL.Query())
	if err != nil {
		writeServiceError(c, h.logger, "list leads", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *LeadHandler) GetLead(c *gin.Context) {
	ownerID, leadID, ok := leadParams(c)
	if !ok {
		return
	}

	lead, err := h.service.GetLead(c.Request.Context(), ownerID, leadID)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			writeMessage(c, http.StatusNotFound, "Lead not found")
			return
		}
		writeServiceError(c, h.logger, "get lead", err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) UpdateLead(c *gin.Context) {
	ownerID, leadID, ok := leadParams(c)
	if !ok {
		return
	}

	var req model.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	lead, err := h.service.UpdateLead(c.Request.Context(), ownerID, leadID, req)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			writeMessage(c, http.StatusNotFound, "Lead not found")
			return
		}
		writeServiceError(c, h.logger, "update lead", err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) DeleteLead(c *gin.Context) {
	ownerID, leadID, ok := leadParams(c)
	if !ok {
		return
	}

	if err := h.service.DeleteLead(c.Request.Context(), ownerID, leadID); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			writeMessage(c, http.StatusNotFound, "Lead not found")
			return
		}
		writeServiceError(c, h.logger, "delete lead", err)
		return
	}
	writeMessage(c, http.StatusOK, "Lead deleted")
}

// RegisterLeadRoutes registers lead routes, all behind authMW
func (h *LeadHandler) RegisterLeadRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	leads := rg.Group("/leads")
	leads.Use(authMW)
	{
		leads.POST("", h.CreateLead)
		leads.GET("", h.ListLeads)
		leads.GET("/:id", h.GetLead)
		leads.PUT("/:id", h.UpdateLead)
		leads.DELETE("/:id", h.DeleteLead)
	}
}

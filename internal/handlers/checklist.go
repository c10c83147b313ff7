package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	dom "Renewals/internal/domain"
	"Renewals/internal/dto"
	"Renewals/internal/render"
	"Renewals/internal/service"

	"github.com/gin-gonic/gin"
)

type ChecklistHandler struct {
	svc *service.ChecklistService
}

func NewChecklistHandler(svc *service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{svc: svc}
}

// Get godoc
// @Summary      Get a policy's renewal checklist
// @Tags         checklists
// @Produce      json
// @Param        key  path  string  true  "Policy key"
// @Success      200  {object}  dto.ChecklistResponse
// @Failure      400  {object}  map[string]string
// @Router       /policies/{key}/checklist [get]
func (h *ChecklistHandler) Get(c *gin.Context) {
	key, ok := policyKey(c)
	if !ok {
		return
	}
	cl := h.svc.Get(c.Request.Context(), key)
	c.JSON(http.StatusOK, checklistToResponse(key, cl))
}

// Toggle godoc
// @Summary      Toggle a checklist task's completion
// @Tags         checklists
// @Accept       json
// @Produce      json
// @Param        key   path  string  true  "Policy key"
// @Param        id    path  int     true  "Task ID"
// @Param        body  body  dto.ToggleTaskRequest  false  "Policy reference for the finalization event"
// @Success      200  {object}  dto.ChecklistResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /policies/{key}/checklist/tasks/{id}/toggle [post]
func (h *ChecklistHandler) Toggle(c *gin.Context) {
	key, ok := policyKey(c)
	if !ok {
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	var req dto.ToggleTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	ref := dom.PolicyRef{
		PolicyNumber:   req.PolicyNumber,
		ID:             req.PolicyID,
		ExpirationDate: req.ExpirationDate,
	}
	if ref.PolicyNumber == "" && ref.ID == 0 && ref.ExpirationDate == "" {
		ref.PolicyNumber = key
	}
	cl, err := h.svc.Toggle(c.Request.Context(), key, id, ref)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, checklistToResponse(key, cl))
}

// SetNotes godoc
// @Summary      Update a checklist task's notes
// @Tags         checklists
// @Accept       json
// @Produce      json
// @Param        key   path  string  true  "Policy key"
// @Param        id    path  int     true  "Task ID"
// @Param        body  body  dto.SetNotesRequest  true  "Notes"
// @Success      200  {object}  dto.ChecklistResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /policies/{key}/checklist/tasks/{id}/notes [put]
func (h *ChecklistHandler) SetNotes(c *gin.Context) {
	key, ok := policyKey(c)
	if !ok {
		return
	}
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	var req dto.SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cl, err := h.svc.SetNotes(c.Request.Context(), key, id, *req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, checklistToResponse(key, cl))
}

// AddTask godoc
// @Summary      Append a task to a policy's checklist
// @Tags         checklists
// @Accept       json
// @Produce      json
// @Param        key   path  string  true  "Policy key"
// @Param        body  body  dto.AddTaskRequest  true  "Task label"
// @Success      201  {object}  dto.ChecklistResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /policies/{key}/checklist/tasks [post]
func (h *ChecklistHandler) AddTask(c *gin.Context) {
	key, ok := policyKey(c)
	if !ok {
		return
	}
	var req dto.AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cl, err := h.svc.AddTask(c.Request.Context(), key, req.Label)
	if err != nil {
		if errors.Is(err, service.ErrLabelRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, checklistToResponse(key, cl))
}

// Reset godoc
// @Summary      Reset a checklist back to the default template
// @Description  Destructive. Requires confirm=true in the body.
// @Tags         checklists
// @Accept       json
// @Produce      json
// @Param        key   path  string  true  "Policy key"
// @Param        body  body  dto.ResetRequest  true  "Confirmation"
// @Success      200  {object}  dto.ChecklistResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /policies/{key}/checklist/reset [post]
func (h *ChecklistHandler) Reset(c *gin.Context) {
	key, ok := policyKey(c)
	if !ok {
		return
	}
	var req dto.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset requires confirm=true"})
		return
	}
	cl, err := h.svc.Reset(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, checklistToResponse(key, cl))
}

// Revalidate godoc
// @Summary      Re-validate a checklist against the durable store
// @Description  Heals completed/timestamp drift and refreshes the cache. Call on view-shown, focus-return, or external-mutation notifications.
// @Tags         checklists
// @Produce      json
// @Param        key  path  string  true  "Policy key"
// @Success      200  {object}  dto.ChecklistResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /policies/{key}/checklist/revalidate [post]
func (h *ChecklistHandler) Revalidate(c *gin.Context) {
	key, ok := policyKey(c)
	if !ok {
		return
	}
	cl, err := h.svc.Revalidate(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, checklistToResponse(key, cl))
}

// DeriveKey godoc
// @Summary      Derive the canonical checklist key for a policy
// @Description  Precedence: policyNumber, then internal id, then expiration date.
// @Tags         policies
// @Produce      json
// @Param        policyNumber    query  string  false  "Policy number"
// @Param        id              query  int     false  "Internal policy id"
// @Param        expirationDate  query  string  false  "Expiration date"
// @Success      200  {object}  dto.PolicyKeyResponse
// @Failure      400  {object}  map[string]string
// @Router       /policies/key [get]
func (h *ChecklistHandler) DeriveKey(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Query("id"), 10, 64)
	key := dom.PolicyKeyFor(dom.PolicyRef{
		PolicyNumber:   c.Query("policyNumber"),
		ID:             id,
		ExpirationDate: c.Query("expirationDate"),
	})
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no policy reference provided"})
		return
	}
	c.JSON(http.StatusOK, dto.PolicyKeyResponse{PolicyKey: key})
}

// Stats godoc
// @Summary      Reconciliation counters
// @Tags         stats
// @Produce      json
// @Success      200  {object}  service.StatsSnapshot
// @Router       /stats [get]
func (h *ChecklistHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats())
}

func policyKey(c *gin.Context) (string, bool) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid policy key"})
		return "", false
	}
	return key, true
}

func parseTaskID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return id, true
}

func checklistToResponse(policyKey string, cl dom.Checklist) dto.ChecklistResponse {
	rows := render.Rows(cl)
	out := make([]dto.RowResponse, len(rows))
	for i, r := range rows {
		out[i] = dto.RowResponse{
			ID:         r.ID,
			Label:      r.Label,
			Checked:    r.Checked,
			StatusText: r.StatusText,
			Notes:      r.Notes,
		}
	}
	return dto.ChecklistResponse{PolicyKey: policyKey, Rows: out}
}

package handlers

import (
	"fmt"
	"net/http"

	"coachflow/services/optimizer"

	"github.com/gin-gonic/gin"
)

// OptimizerHandler exposes the schedule optimization surface over HTTP.
type OptimizerHandler struct {
	Service optimizer.GapOptimizerService
}

func NewOptimizerHandler(svc optimizer.GapOptimizerService) *OptimizerHandler {
	return &OptimizerHandler{Service: svc}
}

// coachID resolves the acting coach from the auth middleware, falling back
// to the route parameter for internal callers.
func coachID(c *gin.Context) string {
	if id := c.GetString("coachID"); id != "" {
		return id
	}
	return c.Param("coachId")
}

// DetectGapsHandler returns idle windows for one date.
// GET /api/optimizer/gaps?date=YYYY-MM-DD&minGap=30
func (h *OptimizerHandler) DetectGapsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	minGap := 0
	if raw := c.Query("minGap"); raw != "" {
		if _, err := fmt.Sscanf(raw, "%d", &minGap); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minGap must be an integer"})
			return
		}
	}

	gaps := h.Service.DetectGaps(coachID(c), date, minGap)
	c.JSON(http.StatusOK, gin.H{"gaps": gaps})
}

// AnalyzeHandler runs opportunity analysis over an inclusive date range.
// GET /api/optimizer/opportunities?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *OptimizerHandler) AnalyzeHandler(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end query parameters are required"})
		return
	}

	opportunities := h.Service.AnalyzeOpportunities(coachID(c), start, end)
	c.JSON(http.StatusOK, gin.H{"opportunities": opportunities})
}

// CreateSuggestionsHandler analyzes a range and persists the qualifying
// opportunities as pending suggestions.
// POST /api/optimizer/suggestions  {"start": "...", "end": "..."}
func (h *OptimizerHandler) CreateSuggestionsHandler(c *gin.Context) {
	var input struct {
		Start string `json:"start" binding:"required"`
		End   string `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	coach := coachID(c)
	opportunities := h.Service.AnalyzeOpportunities(coach, input.Start, input.End)
	suggestions, err := h.Service.CreateSuggestions(coach, opportunities)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to create suggestions: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetPendingHandler lists non-expired pending suggestions, best first.
// GET /api/optimizer/suggestions/pending
func (h *OptimizerHandler) GetPendingHandler(c *gin.Context) {
	suggestions, err := h.Service.GetPendingSuggestions(coachID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to fetch suggestions: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// RespondHandler accepts or rejects a pending suggestion.
// POST /api/optimizer/suggestions/:id/respond  {"accept": true}
func (h *OptimizerHandler) RespondHandler(c *gin.Context) {
	var input struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.RespondToSuggestion(c.Param("id"), *input.Accept); err != nil {
		respondOptimizeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ApplyHandler applies an accepted suggestion after a fresh availability
// check.
// POST /api/optimizer/suggestions/:id/apply
func (h *OptimizerHandler) ApplyHandler(c *gin.Context) {
	if err := h.Service.ApplySuggestion(c.Param("id")); err != nil {
		respondOptimizeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "applied"})
}

// ExpireHandler runs the expire sweep on demand.
// POST /api/optimizer/suggestions/expire
func (h *OptimizerHandler) ExpireHandler(c *gin.Context) {
	count, err := h.Service.ExpireOldSuggestions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("expire sweep failed: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": count})
}

// respondOptimizeError maps the optimizer error taxonomy onto HTTP statuses:
// unknown IDs are 404, caller misuse is 409, staleness is 410.
func respondOptimizeError(c *gin.Context, err error) {
	switch optimizer.ErrCode(err) {
	case optimizer.CodeSuggestionNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case optimizer.CodeAlreadyReviewed, optimizer.CodeNotAccepted:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case optimizer.CodeSlotTaken:
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package videos

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reelsmaxx/reelview/pkg/reelview/models"
	"github.com/reelsmaxx/reelview/pkg/reelview/notify"
	"github.com/reelsmaxx/reelview/pkg/reelview/review"
)

// Handler handles video review requests
type Handler struct {
	mgr      *review.Manager
	disp     *review.Dispatcher
	notifier *notify.Notifier
	logger   *zap.Logger
}

// NewHandler creates a new videos handler
func NewHandler(mgr *review.Manager, disp *review.Dispatcher, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{mgr: mgr, disp: disp, notifier: notifier, logger: logger}
}

// ImportRequest carries the raw pasted text, one Drive link per line.
type ImportRequest struct {
	Links string `json:"links" binding:"required"`
}

// MutateRequest changes exactly one field on a video.
type MutateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// BoardResponse is a page of the visible board.
type BoardResponse struct {
	Videos  []review.Card `json:"videos"`
	HasMore bool          `json:"has_more"`
}

// ListDay returns one day's board
// @Summary List a day's videos
// @Description Load the review board for a single date key. Pass more=true to append the next page instead of reloading.
// @Tags videos
// @Produce json
// @Param dateKey path string true "Date key (YYYY-MM-DD)"
// @Param more query bool false "Load the next page"
// @Success 200 {object} BoardResponse
// @Security BearerAuth
// @Router /days/{dateKey}/videos [get]
func (h *Handler) ListDay(c *gin.Context) {
	board := h.mgr.Day(c.Param("dateKey"))
	board.Load(c.Request.Context(), c.Query("more") != "true")
	c.JSON(http.StatusOK, BoardResponse{Videos: board.Cards(), HasMore: board.HasMore()})
}

// ListFeed returns the newest-first feed
// @Summary List videos across days
// @Description Paginated newest-first feed, optionally filtered to one status.
// @Tags videos
// @Produce json
// @Param status query string false "Filter by status"
// @Param more query bool false "Load the next page"
// @Success 200 {object} BoardResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Security BearerAuth
// @Router /videos [get]
func (h *Handler) ListFeed(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}
	board := h.mgr.Feed(status)
	board.Load(c.Request.Context(), c.Query("more") != "true")
	c.JSON(http.StatusOK, BoardResponse{Videos: board.Cards(), HasMore: board.HasMore()})
}

// Import adds pasted links to a day's board
// @Summary Import pasted Drive links
// @Description Split the pasted text on line breaks, resolve each line to a Drive file id, and merge the resolved videos into the board. Unresolvable lines are skipped.
// @Tags videos
// @Accept json
// @Produce json
// @Param dateKey path string true "Date key (YYYY-MM-DD)"
// @Param request body ImportRequest true "Pasted links"
// @Success 201 {array} models.Video
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /days/{dateKey}/videos [post]
func (h *Handler) Import(c *gin.Context) {
	dateKey := c.Param("dateKey")

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added := h.mgr.Day(dateKey).AddBatch(req.Links, dateKey)
	if added == nil {
		added = []models.Video{}
	}
	c.JSON(http.StatusCreated, added)
}

// Mutate updates one field of a video
// @Summary Update a single field
// @Description Change the caption, feedback, or status of a visible video. The partial update carries only the changed field.
// @Tags videos
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body MutateRequest true "Field and new value"
// @Success 200 {object} map[string]string "Field updated"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Video not visible"
// @Security BearerAuth
// @Router /videos/{id} [patch]
func (h *Handler) Mutate(c *gin.Context) {
	id := c.Param("id")

	var req MutateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Field {
	case review.FieldCaption, review.FieldFeedback:
	case review.FieldStatus:
		if !models.ValidStatus(req.Value) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Field is not mutable"})
		return
	}

	board, ok := h.mgr.Find(id)
	if !ok || !board.MutateField(id, req.Field, req.Value) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not visible"})
		return
	}

	if req.Field == review.FieldStatus && req.Value == models.StatusApproved {
		h.alertReviewer(board, id)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Field updated"})
}

// alertReviewer fires the out-of-band approval alert. Delivery is
// one-way: a failure is logged and nothing is retried.
func (h *Handler) alertReviewer(board *review.Board, id string) {
	var caption, feedback string
	for _, card := range board.Cards() {
		if card.ID == id {
			caption, feedback = card.Caption, card.Feedback
			break
		}
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if ok, msg := h.notifier.Send(ctx, caption, feedback); !ok {
			h.logger.Warn("approval alert not delivered", zap.String("id", id), zap.String("reason", msg))
		}
	}()
}

// Delete removes a video
// @Summary Delete a video
// @Description Remove a video from the board and the store. The store delete is dispatched even when the id is not on any visible board.
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]string "Video deleted"
// @Security BearerAuth
// @Router /videos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	if board, ok := h.mgr.Find(id); ok {
		board.Remove(id)
	} else {
		h.disp.EnqueueDelete(id)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}

// MediaError records a playback failure
// @Summary Report a media load error
// @Description Flip the video's playback source from the direct stream to the embedded preview frame. The transition is one-shot and permanent.
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]string "Fallback recorded"
// @Failure 404 {object} map[string]string "Video not visible"
// @Security BearerAuth
// @Router /videos/{id}/media-error [post]
func (h *Handler) MediaError(c *gin.Context) {
	id := c.Param("id")

	board, ok := h.mgr.Find(id)
	if !ok || !board.MarkMediaFailed(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not visible"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fallback recorded"})
}

// RegisterRoutes registers video routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/days/:dateKey/videos", h.ListDay)
	rg.POST("/days/:dateKey/videos", h.Import)

	rg.GET("/videos", h.ListFeed)
	rg.PATCH("/videos/:id", h.Mutate)
	rg.DELETE("/videos/:id", h.Delete)
	rg.POST("/videos/:id/media-error", h.MediaError)
}

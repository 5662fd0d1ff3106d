package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/service/heatmap"
)

// TrackHandler ingests click/scroll events and serves the rendered
// heatmap image.
type TrackHandler struct {
	service heatmap.HeatmapUseCase
}

type trackRequest struct {
	Event        string `json:"event" binding:"required"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	ScrollTop    int    `json:"scroll_top"`
	ScrollHeight int    `json:"scroll_height"`
}

func NewTrackHandler(service heatmap.HeatmapUseCase) *TrackHandler {
	return &TrackHandler{service: service}
}

func (h *TrackHandler) Register(router *gin.RouterGroup) {
	router.POST("/track", h.track)
	router.GET("/heatmap.png", h.heatmap)
}

func (h *TrackHandler) track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interaction, err := h.service.Record(c.Request.Context(), heatmap.RecordInput{
		Event:        req.Event,
		X:            req.X,
		Y:            req.Y,
		ScrollTop:    req.ScrollTop,
		ScrollHeight: req.ScrollHeight,
	})
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, interaction)
}

// heatmap renders on demand. The worker also refreshes a static copy on
// a timer for cheap serving elsewhere. Rendering goes through a buffer
// so a failure can still produce a 500 instead of a truncated image.
func (h *TrackHandler) heatmap(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.Render(c.Request.Context(), &buf); err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

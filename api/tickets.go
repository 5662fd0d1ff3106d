package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/service/tickets"
)

type TicketHandler struct {
	service tickets.TicketUseCase
}

type issueTicketRequest struct {
	ReservationID int64  `json:"reservation_id" binding:"required"`
	SeatNumber    string `json:"seat_number"`
	Class         string `json:"class" binding:"required"`
	Changeable    *bool  `json:"changeable"`
	Refundable    *bool  `json:"refundable"`
}

type changeSeatRequest struct {
	SeatNumber string `json:"seat_number" binding:"required"`
}

type applyPromotionRequest struct {
	PromoID string `json:"promo_id" binding:"required"`
}

func NewTicketHandler(service tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.issue)
	router.GET("/:number", h.get)
	router.DELETE("/:number", h.cancel)
	router.PUT("/:number/seat", h.changeSeat)
	router.POST("/:number/promotion", h.applyPromotion)
}

func (h *TicketHandler) issue(c *gin.Context) {
	var req issueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.service.Issue(c.Request.Context(), tickets.IssueTicketInput{
		ReservationID: req.ReservationID,
		SeatNumber:    req.SeatNumber,
		Class:         req.Class,
		Changeable:    req.Changeable,
		Refundable:    req.Refundable,
	})
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) get(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket number"})
		return
	}
	ticket, err := h.service.Get(c.Request.Context(), number)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// cancel returns 200 with the refusal reason when the fare forbids
// cancellation; the ticket stays active.
func (h *TicketHandler) cancel(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket number"})
		return
	}
	ticket, outcome, err := h.service.Cancel(c.Request.Context(), number)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket, "allowed": outcome.Allowed, "reason": outcome.Reason})
}

func (h *TicketHandler) changeSeat(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket number"})
		return
	}
	var req changeSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, outcome, err := h.service.ChangeSeat(c.Request.Context(), number, req.SeatNumber)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket, "allowed": outcome.Allowed, "reason": outcome.Reason})
}

func (h *TicketHandler) applyPromotion(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket number"})
		return
	}
	var req applyPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.service.ApplyPromotion(c.Request.Context(), number, req.PromoID)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

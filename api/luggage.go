package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/service/luggage"
)

type LuggageHandler struct {
	service luggage.LuggageUseCase
}

type checkInLuggageRequest struct {
	PassengerID  int64   `json:"passenger_id" binding:"required"`
	TicketNumber int64   `json:"ticket_number" binding:"required"`
	Weight       float64 `json:"weight" binding:"required"`
	Dimensions   string  `json:"dimensions"`
	Fragile      bool    `json:"fragile"`
}

func NewLuggageHandler(service luggage.LuggageUseCase) *LuggageHandler {
	return &LuggageHandler{service: service}
}

func (h *LuggageHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.checkIn)
	router.GET("/", h.listByPassenger)
	router.GET("/:id", h.get)
	router.PUT("/:id/approve", h.approve)
}

func (h *LuggageHandler) checkIn(c *gin.Context) {
	var req checkInLuggageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	piece, err := h.service.CheckIn(c.Request.Context(), luggage.CheckInInput{
		PassengerID:  req.PassengerID,
		TicketNumber: req.TicketNumber,
		Weight:       req.Weight,
		Dimensions:   req.Dimensions,
		Fragile:      req.Fragile,
	})
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, piece)
}

func (h *LuggageHandler) listByPassenger(c *gin.Context) {
	passengerID, err := strconv.ParseInt(c.Query("passenger_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passenger_id is required"})
		return
	}
	pieces, err := h.service.ListByPassenger(c.Request.Context(), passengerID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, pieces)
}

func (h *LuggageHandler) get(c *gin.Context) {
	piece, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, piece)
}

func (h *LuggageHandler) approve(c *gin.Context) {
	piece, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, piece)
}

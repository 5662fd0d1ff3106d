package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/service/booking"
)

type ReservationHandler struct {
	service booking.BookingUseCase
}

type createReservationRequest struct {
	PassengerID int64  `json:"passenger_id" binding:"required"`
	FlightID    int64  `json:"flight_id" binding:"required"`
	SeatNumber  string `json:"seat_number" binding:"required"`
}

func NewReservationHandler(service booking.BookingUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id/confirm", h.confirm)
	router.DELETE("/:id", h.cancel)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.service.CreateReservation(c.Request.Context(), booking.CreateReservationInput{
		PassengerID: req.PassengerID,
		FlightID:    req.FlightID,
		SeatNumber:  req.SeatNumber,
	})
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	reservation, err := h.service.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) confirm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	reservation, err := h.service.ConfirmReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	reservation, err := h.service.CancelReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/repository"
	"github.com/selimhany/airreserve/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	AirlineID       int64     `json:"airline_id"`
	FlightNumber    string    `json:"flight_number" binding:"required"`
	DepartureCode   string    `json:"departure_code" binding:"required"`
	DestinationCode string    `json:"destination_code" binding:"required"`
	DepartureTime   time.Time `json:"departure_time" binding:"required"`
	ArrivalTime     time.Time `json:"arrival_time" binding:"required"`
	TotalSeats      int       `json:"total_seats" binding:"required"`
	Gate            string    `json:"gate"`
	Terminal        string    `json:"terminal"`
	OperatingDays   uint8     `json:"operating_days"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *FlightHandler) list(c *gin.Context) {
	filter := repository.FlightFilter{
		DepartureCode:   c.Query("from"),
		DestinationCode: c.Query("to"),
	}
	if after := c.Query("after"); after != "" {
		t, err := time.Parse(time.RFC3339, after)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "after must be RFC3339"})
			return
		}
		filter.DepartureAfter = t
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := flightFromRequest(req)
	if err := h.service.Create(c.Request.Context(), flight); err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := flightFromRequest(req)
	flight.ID = id
	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.Status(http.StatusNoContent)
}

func flightFromRequest(req flightRequest) *domain.Flight {
	days := domain.Weekdays(req.OperatingDays)
	if days == 0 {
		days = domain.EveryDay
	}
	return &domain.Flight{
		AirlineID:       req.AirlineID,
		FlightNumber:    req.FlightNumber,
		DepartureCode:   req.DepartureCode,
		DestinationCode: req.DestinationCode,
		DepartureTime:   req.DepartureTime,
		ArrivalTime:     req.ArrivalTime,
		TotalSeats:      req.TotalSeats,
		Gate:            req.Gate,
		Terminal:        req.Terminal,
		OperatingDays:   days,
	}
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/repository"
)

// AirportHandler serves the static reference data: airports, countries
// and airlines.
type AirportHandler struct {
	repo repository.AirportRepository
}

func NewAirportHandler(repo repository.AirportRepository) *AirportHandler {
	return &AirportHandler{repo: repo}
}

func (h *AirportHandler) Register(router *gin.RouterGroup) {
	router.GET("/airports", h.listAirports)
	router.GET("/airports/:code", h.getAirport)
	router.GET("/countries", h.listCountries)
	router.GET("/airlines", h.listAirlines)
	router.GET("/airlines/:id", h.getAirline)
}

func (h *AirportHandler) listAirports(c *gin.Context) {
	airports, err := h.repo.ListAirports(c.Request.Context(), c.Query("country"))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *AirportHandler) getAirport(c *gin.Context) {
	airport, err := h.repo.GetAirport(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *AirportHandler) listCountries(c *gin.Context) {
	countries, err := h.repo.ListCountries(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (h *AirportHandler) listAirlines(c *gin.Context) {
	airlines, err := h.repo.ListAirlines(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, airlines)
}

func (h *AirportHandler) getAirline(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	airline, err := h.repo.GetAirline(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, airline)
}

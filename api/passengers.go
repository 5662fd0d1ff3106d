package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/repository"
)

// PassengerHandler works straight against the repository: passenger
// records carry no lifecycle rules of their own.
type PassengerHandler struct {
	repo repository.PassengerRepository
}

type createPassengerRequest struct {
	Name                string    `json:"name" binding:"required"`
	NationalID          string    `json:"national_id" binding:"required"`
	Email               string    `json:"email"`
	PhoneNumber         string    `json:"phone_number"`
	Nationality         string    `json:"nationality"`
	VIP                 bool      `json:"vip"`
	Address             string    `json:"address"`
	DateOfBirth         time.Time `json:"date_of_birth"`
	PassportNumber      string    `json:"passport_number"`
	FrequentFlyerNumber string    `json:"frequent_flyer_number"`
}

func NewPassengerHandler(repo repository.PassengerRepository) *PassengerHandler {
	return &PassengerHandler{repo: repo}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *PassengerHandler) create(c *gin.Context) {
	var req createPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	passenger := &domain.Passenger{
		Name:                req.Name,
		NationalID:          req.NationalID,
		Email:               req.Email,
		PhoneNumber:         req.PhoneNumber,
		Nationality:         req.Nationality,
		VIP:                 req.VIP,
		Address:             req.Address,
		DateOfBirth:         req.DateOfBirth,
		PassportNumber:      req.PassportNumber,
		FrequentFlyerNumber: req.FrequentFlyerNumber,
	}
	if err := h.repo.Create(c.Request.Context(), passenger); err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, passenger)
}

func (h *PassengerHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	result, err := h.repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	passenger, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, passenger)
}

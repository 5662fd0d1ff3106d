package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/service/loyalty"
)

type LoyaltyHandler struct {
	service loyalty.LoyaltyUseCase
}

type enrollRequest struct {
	PassengerID int64  `json:"passenger_id" binding:"required"`
	ProgramName string `json:"program_name"`
}

type pointsRequest struct {
	Points int `json:"points" binding:"required"`
}

func NewLoyaltyHandler(service loyalty.LoyaltyUseCase) *LoyaltyHandler {
	return &LoyaltyHandler{service: service}
}

func (h *LoyaltyHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.enroll)
	router.GET("/:passenger_id", h.get)
	router.POST("/:passenger_id/points", h.addPoints)
	router.POST("/:passenger_id/redeem", h.redeemPoints)
	router.GET("/:passenger_id/tier-advice", h.tierAdvice)
}

func (h *LoyaltyHandler) enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	membership, err := h.service.Enroll(c.Request.Context(), loyalty.EnrollInput{
		PassengerID: req.PassengerID,
		ProgramName: req.ProgramName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyEnrolled) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, membership)
}

func (h *LoyaltyHandler) get(c *gin.Context) {
	passengerID, ok := h.passengerID(c)
	if !ok {
		return
	}
	membership, err := h.service.Get(c.Request.Context(), passengerID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, membership)
}

func (h *LoyaltyHandler) addPoints(c *gin.Context) {
	passengerID, ok := h.passengerID(c)
	if !ok {
		return
	}
	var req pointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	membership, err := h.service.AddPoints(c.Request.Context(), passengerID, req.Points)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, membership)
}

func (h *LoyaltyHandler) redeemPoints(c *gin.Context) {
	passengerID, ok := h.passengerID(c)
	if !ok {
		return
	}
	var req pointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	membership, err := h.service.RedeemPoints(c.Request.Context(), passengerID, req.Points)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientPoints) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, membership)
}

func (h *LoyaltyHandler) tierAdvice(c *gin.Context) {
	passengerID, ok := h.passengerID(c)
	if !ok {
		return
	}
	membership, advice, err := h.service.TierAdvice(c.Request.Context(), passengerID)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"membership": membership, "advice": advice})
}

func (h *LoyaltyHandler) passengerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("passenger_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid passenger id"})
		return 0, false
	}
	return id, true
}

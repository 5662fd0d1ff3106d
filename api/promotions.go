package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/service/tickets"
)

type PromotionHandler struct {
	service tickets.TicketUseCase
}

type createPromotionRequest struct {
	PromoID            string    `json:"promo_id" binding:"required"`
	Description        string    `json:"description"`
	Kind               string    `json:"kind"`
	DiscountPercentage float64   `json:"discount_percentage" binding:"required"`
	ExtraBonus         float64   `json:"extra_bonus"`
	StartDate          time.Time `json:"start_date" binding:"required"`
	EndDate            time.Time `json:"end_date" binding:"required"`
	PromoCode          string    `json:"promo_code"`
	MinPurchase        float64   `json:"min_purchase"`
	MaxDiscount        float64   `json:"max_discount"`
	UsageLimit         int       `json:"usage_limit" binding:"required"`
}

type extendPromotionRequest struct {
	EndDate time.Time `json:"end_date" binding:"required"`
}

func NewPromotionHandler(service tickets.TicketUseCase) *PromotionHandler {
	return &PromotionHandler{service: service}
}

func (h *PromotionHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id/extend", h.extend)
}

func (h *PromotionHandler) create(c *gin.Context) {
	var req createPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo := &domain.Promotion{
		PromoID:            req.PromoID,
		Description:        req.Description,
		Kind:               domain.PromotionKind(req.Kind),
		DiscountPercentage: req.DiscountPercentage,
		ExtraBonus:         req.ExtraBonus,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		PromoCode:          req.PromoCode,
		MinPurchase:        req.MinPurchase,
		MaxDiscount:        req.MaxDiscount,
		UsageLimit:         req.UsageLimit,
	}
	if err := h.service.CreatePromotion(c.Request.Context(), promo); err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, promo)
}

func (h *PromotionHandler) get(c *gin.Context) {
	promo, err := h.service.GetPromotion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, promo)
}

func (h *PromotionHandler) extend(c *gin.Context) {
	var req extendPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo, err := h.service.ExtendPromotion(c.Request.Context(), c.Param("id"), req.EndDate)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, promo)
}

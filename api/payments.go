package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/service/payments"
)

type PaymentHandler struct {
	service payments.PaymentUseCase
}

type createPaymentRequest struct {
	ReservationID int64   `json:"reservation_id" binding:"required"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method" binding:"required"`
	Currency      string  `json:"currency"`
	Refundable    bool    `json:"refundable"`
}

func NewPaymentHandler(service payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id/complete", h.complete)
	router.PUT("/:id/refund", h.refund)
}

func (h *PaymentHandler) create(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.service.Create(c.Request.Context(), payments.CreatePaymentInput{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Method:        req.Method,
		Currency:      req.Currency,
		Refundable:    req.Refundable,
	})
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	payment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) complete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	payment, outcome, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment, "allowed": outcome.Allowed, "reason": outcome.Reason})
}

func (h *PaymentHandler) refund(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	payment, outcome, err := h.service.Refund(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment, "allowed": outcome.Allowed, "reason": outcome.Reason})
}

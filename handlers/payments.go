package handlers

import (
	"math"
	"net/http"

	"ecommerce-api/config"
	"ecommerce-api/middleware"
	"ecommerce-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	OrderID   uint   `json:"order_id" binding:"required"`
	CardToken string `json:"card_token" binding:"required"`
}

// CreatePayment charges the caller's pending order through the configured
// gateway, records the outcome and confirms the order on success.
func CreatePayment(c *gin.Context) {
	if Gateway == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway not configured"})
		return
	}

	userID := middleware.GetUserID(c)
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Status != models.StatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order is not awaiting payment"})
		return
	}

	currency := config.C.Currency
	amount := int64(math.Round(order.Total * 100))

	pay := models.Payment{
		Reference: uuid.NewString(),
		OrderID:   order.ID,
		Amount:    order.Total,
		Currency:  currency,
		Status:    models.PaymentPending,
	}

	charge, err := Gateway.Charge(amount, currency, req.CardToken, order.OrderNumber)
	if err != nil {
		pay.Status = models.PaymentFailed
		_ = config.DB.Create(&pay).Error
		publish("payment.failed", gin.H{
			"order_number": order.OrderNumber,
			"reference":    pay.Reference,
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway error"})
		return
	}

	pay.ChargeID = charge.ID
	if charge.Paid {
		pay.Status = models.PaymentSuccessful
	} else {
		pay.Status = models.PaymentFailed
	}
	if err := config.DB.Create(&pay).Error; err != nil {
		internalError(c, err)
		return
	}

	if !charge.Paid {
		publish("payment.failed", gin.H{
			"order_number":    order.OrderNumber,
			"reference":       pay.Reference,
			"charge_id":       charge.ID,
			"failure_code":    charge.FailureCode,
			"failure_message": charge.FailureMessage,
		})
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment was declined", "payment": pay})
		return
	}

	if err := config.DB.Model(&order).Update("status", models.StatusConfirmed).Error; err != nil {
		internalError(c, err)
		return
	}
	publish("payment.paid", gin.H{
		"order_number": order.OrderNumber,
		"reference":    pay.Reference,
		"charge_id":    charge.ID,
		"amount":       charge.Amount,
		"currency":     charge.Currency,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Payment successful", "payment": pay})
}

// GetPayment returns one of the caller's payments by reference.
func GetPayment(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var pay models.Payment
	err := config.DB.Preload("Order").
		Where("reference = ?", c.Param("id")).
		First(&pay).Error
	if err != nil || pay.Order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": pay})
}

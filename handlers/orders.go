package handlers

import (
	"net/http"
	"strings"

	"ecommerce-api/config"
	"ecommerce-api/middleware"
	"ecommerce-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
	Items     []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// PlaceOrder creates an order from the caller's cart items, snapshotting
// price and name per line. Stock decrement, sales counter bump and order
// insert run in one transaction.
func PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	order := models.Order{
		OrderNumber: newOrderNumber(),
		UserID:      userID,
		Status:      models.StatusPending,
		AddressID:   address.ID,
	}

	var badRequest string
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var total float64
		var items []models.OrderItem
		for _, reqItem := range req.Items {
			var product models.Product
			if err := tx.Where("is_active = ?", true).First(&product, reqItem.ProductID).Error; err != nil {
				badRequest = "Product not available"
				return err
			}
			if product.Stock < reqItem.Quantity {
				badRequest = "Insufficient stock for '" + product.Name + "'"
				return gorm.ErrInvalidData
			}
			// sales_count counts purchase events, not units
			if err := tx.Model(&product).UpdateColumns(map[string]interface{}{
				"stock":       gorm.Expr("stock - ?", reqItem.Quantity),
				"sales_count": gorm.Expr("sales_count + 1"),
			}).Error; err != nil {
				return err
			}
			total += product.Price * float64(reqItem.Quantity)
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  reqItem.Quantity,
				Price:     product.Price,
				Name:      product.Name,
			})
		}
		order.Total = total
		order.Items = items
		return tx.Create(&order).Error
	})
	if err != nil {
		if badRequest != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": badRequest})
			return
		}
		internalError(c, err)
		return
	}

	if err := config.DB.Preload("Items.Product").Preload("Address").First(&order, order.ID).Error; err != nil {
		internalError(c, err)
		return
	}
	publish("order.created", gin.H{
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total":        order.Total,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// GetMyOrders returns all orders for the logged-in user
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var orders []models.Order
	err := config.DB.Preload("Items.Product").Preload("Address").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// getOwnOrder loads an order and hides it from non-owners behind a 404.
func getOwnOrder(c *gin.Context) (*models.Order, bool) {
	userID := middleware.GetUserID(c)
	var order models.Order
	err := config.DB.Preload("Items.Product").Preload("Address").First(&order, c.Param("id")).Error
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return nil, false
	}
	return &order, true
}

// GetOrder returns a single order's full detail
func GetOrder(c *gin.Context) {
	order, ok := getOwnOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetOrderDelivery returns the delivery tracking view of an order.
func GetOrderDelivery(c *gin.Context) {
	order, ok := getOwnOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"delivered_at": order.DeliveredAt,
		"address":      order.Address,
	})
}

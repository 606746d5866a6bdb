package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"ecommerce-api/config"
	"ecommerce-api/middleware"
	"ecommerce-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRouter() *gin.Engine {
	r := gin.New()
	auth := r.Group("/api", middleware.AuthRequired())
	auth.POST("/orders", PlaceOrder)
	auth.GET("/orders", GetMyOrders)
	auth.GET("/orders/:id", GetOrder)
	auth.GET("/orders/:id/delivery", GetOrderDelivery)
	return r
}

func TestPlaceOrderSnapshotsAndCounters(t *testing.T) {
	setupTestDB(t)
	r := orderRouter()
	user, token := createTestUser(t, "alice@example.com", models.RoleCustomer)

	addr := models.Address{UserID: user.ID, Name: "Home", Street: "1 Main St"}
	require.NoError(t, config.DB.Create(&addr).Error)
	scarf := seedProduct(t, models.Product{Name: "Scarf", Slug: "scarf", Price: 25, Stock: 10, IsActive: true})
	mug := seedProduct(t, models.Product{Name: "Mug", Slug: "mug", Price: 8, Stock: 3, IsActive: true})

	body := map[string]any{
		"address_id": addr.ID,
		"items": []map[string]any{
			{"product_id": scarf.ID, "quantity": 2},
			{"product_id": mug.ID, "quantity": 1},
		},
	}
	w := doJSON(t, r, "POST", "/api/orders", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	order := decode(t, w)["order"].(map[string]any)
	assert.Equal(t, 25*2+8*1.0, order["total"])
	assert.Equal(t, "PENDING", order["status"])
	assert.Len(t, order["items"].([]any), 2)

	var storedScarf, storedMug models.Product
	require.NoError(t, config.DB.First(&storedScarf, scarf.ID).Error)
	require.NoError(t, config.DB.First(&storedMug, mug.ID).Error)
	assert.Equal(t, 8, storedScarf.Stock)
	assert.Equal(t, 2, storedMug.Stock)
	// one purchase event per product line
	assert.Equal(t, 1, storedScarf.SalesCount)
	assert.Equal(t, 1, storedMug.SalesCount)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	setupTestDB(t)
	r := orderRouter()
	user, token := createTestUser(t, "alice@example.com", models.RoleCustomer)

	addr := models.Address{UserID: user.ID, Name: "Home", Street: "1 Main St"}
	require.NoError(t, config.DB.Create(&addr).Error)
	scarf := seedProduct(t, models.Product{Name: "Scarf", Slug: "scarf", Price: 25, Stock: 10, IsActive: true})
	mug := seedProduct(t, models.Product{Name: "Mug", Slug: "mug", Price: 8, Stock: 1, IsActive: true})

	body := map[string]any{
		"address_id": addr.ID,
		"items": []map[string]any{
			{"product_id": scarf.ID, "quantity": 2},
			{"product_id": mug.ID, "quantity": 5},
		},
	}
	w := doJSON(t, r, "POST", "/api/orders", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// the first line's stock decrement must not survive the failed order
	var storedScarf models.Product
	require.NoError(t, config.DB.First(&storedScarf, scarf.ID).Error)
	assert.Equal(t, 10, storedScarf.Stock)
	assert.Equal(t, 0, storedScarf.SalesCount)

	var n int64
	require.NoError(t, config.DB.Model(&models.Order{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestPlaceOrderRejectsForeignAddress(t *testing.T) {
	setupTestDB(t)
	r := orderRouter()

	bob, _ := createTestUser(t, "bob@example.com", models.RoleCustomer)
	_, aliceToken := createTestUser(t, "alice@example.com", models.RoleCustomer)

	bobAddr := models.Address{UserID: bob.ID, Name: "Bob Home", Street: "b"}
	require.NoError(t, config.DB.Create(&bobAddr).Error)
	scarf := seedProduct(t, models.Product{Name: "Scarf", Slug: "scarf", Price: 25, Stock: 10, IsActive: true})

	body := map[string]any{
		"address_id": bobAddr.ID,
		"items":      []map[string]any{{"product_id": scarf.ID, "quantity": 1}},
	}
	w := doJSON(t, r, "POST", "/api/orders", aliceToken, body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderHiddenFromNonOwner(t *testing.T) {
	setupTestDB(t)
	r := orderRouter()

	owner, ownerToken := createTestUser(t, "owner@example.com", models.RoleCustomer)
	_, intruderToken := createTestUser(t, "intruder@example.com", models.RoleCustomer)

	addr := models.Address{UserID: owner.ID, Name: "Home", Street: "1 Main St"}
	require.NoError(t, config.DB.Create(&addr).Error)
	order := models.Order{OrderNumber: "ORD-TEST1", UserID: owner.ID, Status: models.StatusPending, AddressID: addr.ID, Total: 10}
	require.NoError(t, config.DB.Create(&order).Error)

	w := doJSON(t, r, "GET", fmt.Sprintf("/api/orders/%d", order.ID), intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/orders/%d", order.ID), ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetOrderDeliveryView(t *testing.T) {
	setupTestDB(t)
	r := orderRouter()
	user, token := createTestUser(t, "alice@example.com", models.RoleCustomer)

	addr := models.Address{UserID: user.ID, Name: "Home", Street: "1 Main St"}
	require.NoError(t, config.DB.Create(&addr).Error)
	order := models.Order{OrderNumber: "ORD-TEST2", UserID: user.ID, Status: models.StatusShipped, AddressID: addr.ID}
	require.NoError(t, config.DB.Create(&order).Error)

	w := doJSON(t, r, "GET", fmt.Sprintf("/api/orders/%d/delivery", order.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ORD-TEST2", body["order_number"])
	assert.Equal(t, "SHIPPED", body["status"])
	assert.Nil(t, body["delivered_at"])
	assert.Equal(t, "1 Main St", body["address"].(map[string]any)["street"])
}

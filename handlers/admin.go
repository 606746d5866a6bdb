package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"ecommerce-api/config"
	"ecommerce-api/models"
	"ecommerce-api/query"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var revenueStatuses = []models.OrderStatus{models.StatusDelivered, models.StatusConfirmed}

// ── Product management ──────────────────────────────────────────────────────

// slugify lowercases a name and collapses whitespace runs to single hyphens.
func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// uniqueSlug appends -N when the base slug is already taken, probing each
// candidate so a manually named product (e.g. "A B 2" next to "A B") can't
// collide with the generated suffix.
func uniqueSlug(db *gorm.DB, base string) (string, error) {
	slug := base
	for n := 2; ; n++ {
		var count int64
		if err := db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// AdminListProducts returns a page of the catalog. Soft-deleted rows are
// hidden unless includeInactive=true is passed.
func AdminListProducts(c *gin.Context) {
	page, limit := query.Pagination(c)
	filter := query.BindProductFilter(c)
	sort := query.SortClause(c, query.ProductSortFields)
	includeInactive := c.Query("includeInactive") == "true"

	base := func() *gorm.DB {
		db := config.DB.Model(&models.Product{})
		if !includeInactive {
			db = db.Where("is_active = ?", true)
		}
		return filter.Apply(db)
	}

	var products []models.Product
	var total int64
	g := new(errgroup.Group)
	g.Go(func() error {
		return base().Order(sort).Offset(query.Offset(page, limit)).Limit(limit).Find(&products).Error
	})
	g.Go(func() error {
		return base().Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"pagination": query.NewMeta(page, limit, total),
	})
}

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Stock         int     `json:"stock" binding:"gte=0"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	IsFeatured    bool    `json:"is_featured"`
	LowStockAlert int     `json:"low_stock_alert"`
}

// AdminCreateProduct creates a catalog entry, deriving the slug from the name.
func AdminCreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug, err := uniqueSlug(config.DB, slugify(req.Name))
	if err != nil {
		internalError(c, err)
		return
	}

	product := models.Product{
		Name:          req.Name,
		Slug:          slug,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		Category:      req.Category,
		Brand:         req.Brand,
		IsActive:      true,
		IsFeatured:    req.IsFeatured,
		LowStockAlert: req.LowStockAlert,
	}
	if product.LowStockAlert <= 0 {
		product.LowStockAlert = 5
	}
	if err := config.DB.Create(&product).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// AdminUpdateProduct applies allow-listed field updates to a product.
func AdminUpdateProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed := map[string]bool{
		"name": true, "description": true, "price": true, "stock": true,
		"category": true, "brand": true, "is_active": true, "is_featured": true,
		"low_stock_alert": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if len(update) > 0 {
		if err := config.DB.Model(&product).Updates(update).Error; err != nil {
			internalError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
}

type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required,gte=0"`
}

// AdminUpdateStock writes the stock level directly.
func AdminUpdateStock(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(&product).Update("stock", *req.Stock).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock updated", "product": product})
}

// AdminDeactivateProduct soft-deletes a product (is_active = false).
func AdminDeactivateProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err := config.DB.Model(&product).Update("is_active", false).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated"})
}

// ── Order management ────────────────────────────────────────────────────────

// AdminListOrders returns a page of orders with purchaser, items and address.
func AdminListOrders(c *gin.Context) {
	page, limit := query.Pagination(c)
	status := c.Query("status")

	base := func() *gorm.DB {
		db := config.DB.Model(&models.Order{})
		if status != "" {
			db = db.Where("status = ?", status)
		}
		return db
	}

	var orders []models.Order
	var total int64
	g := new(errgroup.Group)
	g.Go(func() error {
		return base().
			Preload("User").Preload("Items.Product").Preload("Address").
			Order("created_at desc").
			Offset(query.Offset(page, limit)).Limit(limit).
			Find(&orders).Error
	})
	g.Go(func() error {
		return base().Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": query.NewMeta(page, limit, total),
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus sets an order's status. A transition to DELIVERED
// also stamps delivered_at; no other status touches that field.
func AdminUpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	prevStatus := order.Status
	update := map[string]interface{}{"status": req.Status}
	if req.Status == models.StatusDelivered && prevStatus != models.StatusDelivered {
		update["delivered_at"] = time.Now()
	}
	if err := config.DB.Model(&order).Updates(update).Error; err != nil {
		internalError(c, err)
		return
	}

	publish("order.status_changed", gin.H{
		"order_number":    order.OrderNumber,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}

// ── User management ─────────────────────────────────────────────────────────

// adminUserRow is the safe projection plus the per-user order count.
type adminUserRow struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Role       models.UserRole `json:"role"`
	Tier       models.UserTier `json:"tier"`
	IsVerified bool            `json:"is_verified"`
	CreatedAt  time.Time       `json:"created_at"`
	OrderCount int64           `json:"order_count"`
}

// AdminListUsers returns a page of users with their order counts.
func AdminListUsers(c *gin.Context) {
	page, limit := query.Pagination(c)

	var users []adminUserRow
	var total int64
	g := new(errgroup.Group)
	g.Go(func() error {
		return config.DB.Model(&models.User{}).
			Select("users.id, users.name, users.email, users.phone, users.role, users.tier, users.is_verified, users.created_at, " +
				"(SELECT COUNT(*) FROM orders WHERE orders.user_id = users.id) AS order_count").
			Order("users.created_at desc").
			Offset(query.Offset(page, limit)).Limit(limit).
			Scan(&users).Error
	})
	g.Go(func() error {
		return config.DB.Model(&models.User{}).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": query.NewMeta(page, limit, total),
	})
}

type UpdateTierRequest struct {
	Tier models.UserTier `json:"tier" binding:"required,oneof=STANDARD SILVER GOLD PLATINUM"`
}

// AdminUpdateTier sets a user's loyalty tier.
func AdminUpdateTier(c *gin.Context) {
	var req UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := config.DB.Model(&user).Update("tier", req.Tier).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tier updated", "user": userView(&user)})
}

// ── Dashboard & reports ─────────────────────────────────────────────────────

// DashboardStats computes the five dashboard aggregates concurrently.
func DashboardStats(c *gin.Context) {
	var (
		totalOrders   int64
		pendingOrders int64
		totalRevenue  float64
		totalUsers    int64
		lowStock      int64
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		return config.DB.Model(&models.Order{}).Count(&totalOrders).Error
	})
	g.Go(func() error {
		return config.DB.Model(&models.Order{}).
			Where("status = ?", models.StatusPending).
			Count(&pendingOrders).Error
	})
	g.Go(func() error {
		return config.DB.Model(&models.Order{}).
			Where("status IN ?", revenueStatuses).
			Select("COALESCE(SUM(total), 0)").
			Scan(&totalRevenue).Error
	})
	g.Go(func() error {
		return config.DB.Model(&models.User{}).Count(&totalUsers).Error
	})
	g.Go(func() error {
		// per-row threshold, not a fixed constant
		return config.DB.Model(&models.Product{}).
			Where("stock <= low_stock_alert").
			Count(&lowStock).Error
	})
	if err := g.Wait(); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_orders":       totalOrders,
		"pending_orders":     pendingOrders,
		"total_revenue":      totalRevenue,
		"total_users":        totalUsers,
		"low_stock_products": lowStock,
	})
}

// SalesReport aggregates DELIVERED and CONFIRMED orders in an optional
// creation-time range. The aggregation runs in memory over the fetched set.
func SalesReport(c *gin.Context) {
	db := config.DB.Preload("Items").Where("status IN ?", revenueStatuses)

	if start := c.Query("startDate"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected YYYY-MM-DD"})
			return
		}
		db = db.Where("created_at >= ?", t)
	}
	if end := c.Query("endDate"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected YYYY-MM-DD"})
			return
		}
		db = db.Where("created_at < ?", t.Add(24*time.Hour))
	}

	var orders []models.Order
	if err := db.Find(&orders).Error; err != nil {
		internalError(c, err)
		return
	}

	var totalRevenue float64
	for _, o := range orders {
		totalRevenue += o.Total
	}
	averageOrderValue := 0.0
	if len(orders) > 0 {
		averageOrderValue = totalRevenue / float64(len(orders))
	}

	c.JSON(http.StatusOK, gin.H{
		"total_revenue":       totalRevenue,
		"total_orders":        len(orders),
		"average_order_value": averageOrderValue,
		"orders":              orders,
	})
}

package handlers

import (
	"net/http"

	"ecommerce-api/config"
	"ecommerce-api/models"
	"ecommerce-api/query"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ListProducts returns a filtered, sorted page of the public catalog.
// The page and its total count are fetched concurrently.
func ListProducts(c *gin.Context) {
	page, limit := query.Pagination(c)
	filter := query.BindProductFilter(c)
	sort := query.SortClause(c, query.ProductSortFields)

	base := func() *gorm.DB {
		return filter.Apply(config.DB.Model(&models.Product{}).Where("is_active = ?", true))
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

// GetProduct returns one active product with its published reviews and
// increments its view counter by exactly one.
func GetProduct(c *gin.Context) {
	var product models.Product
	err := config.DB.
		Preload("Reviews", "is_published = ?", true).
		Preload("Reviews.User").
		Where("is_active = ?", true).
		First(&product, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// Counter bump happens unconditionally once the row was found, even if
	// the response later fails to serialize.
	if err := config.DB.Model(&models.Product{}).
		Where("id = ?", product.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		internalError(c, err)
		return
	}
	product.ViewCount++

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// ListFeaturedProducts returns the top 12 active featured products by sales.
func ListFeaturedProducts(c *gin.Context) {
	var products []models.Product
	err := config.DB.
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("sales_count desc").
		Limit(12).
		Find(&products).Error
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ListCategories returns active categories in display order.
func ListCategories(c *gin.Context) {
	var categories []models.Category
	err := config.DB.
		Where("is_active = ?", true).
		Order("sort_order asc").
		Find(&categories).Error
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

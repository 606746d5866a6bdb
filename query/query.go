// Package query turns raw, untrusted request parameters into pagination
// windows, sort clauses and filter predicates for gorm queries.
package query

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Meta is the pagination block returned alongside every paged listing.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Pagination reads page/limit from the request, falling back to defaults
// on missing or garbage values.
func Pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", ""))
	if page < 1 {
		page = DefaultPage
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", ""))
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset converts a page number to a row offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// Pages returns ceil(total/limit).
func Pages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NewMeta assembles the pagination block for a listing response.
func NewMeta(page, limit int, total int64) Meta {
	return Meta{Page: page, Limit: limit, Total: total, Pages: Pages(total, limit)}
}

// ProductSortFields maps caller-facing sort keys to column names. Anything
// outside this map falls back to creation time descending, so internal
// field names can't be smuggled in through sortBy.
var ProductSortFields = map[string]string{
	"price":      "price",
	"name":       "name",
	"stock":      "stock",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"salesCount": "sales_count",
	"viewCount":  "view_count",
}

// SortClause builds an ORDER BY clause from sortBy/order params using the
// given allow-list.
func SortClause(c *gin.Context, allowed map[string]string) string {
	column, ok := allowed[c.Query("sortBy")]
	if !ok {
		return "created_at desc"
	}
	dir := "asc"
	if c.Query("order") == "desc" {
		dir = "desc"
	}
	return column + " " + dir
}

// ProductFilter carries the optional catalog filters.
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
	MinPrice *float64
	MaxPrice *float64
}

// BindProductFilter extracts catalog filters from the request. The literal
// category "All" means no category filter.
func BindProductFilter(c *gin.Context) ProductFilter {
	f := ProductFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Search:   c.Query("search"),
	}
	if f.Category == "All" {
		f.Category = ""
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	return f
}

// Apply adds the filter predicates to a gorm chain. The substring search is
// case-insensitive and ORed across name, brand and description.
func (f ProductFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Brand != "" {
		db = db.Where("brand = ?", f.Brand)
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		// LOWER on both sides: sqlite's bare LIKE is only
		// case-insensitive for ASCII
		pattern := "%" + strings.ToLower(f.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern, pattern)
	}
	return db
}

package models

import "time"

type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Slug          string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description   string    `json:"description"`
	Price         float64   `json:"price" gorm:"not null"`
	Stock         int       `json:"stock" gorm:"default:0"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	IsFeatured    bool      `json:"is_featured" gorm:"default:false"`
	ViewCount     int       `json:"view_count" gorm:"default:0"`
	SalesCount    int       `json:"sales_count" gorm:"default:0"`
	LowStockAlert int       `json:"low_stock_alert" gorm:"default:5"`
	Reviews       []Review  `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Review is visible on public product reads only when IsPublished is true.
type Review struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProductID   uint      `json:"product_id" gorm:"not null;index"`
	UserID      uint      `json:"user_id" gorm:"not null"`
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating      int       `json:"rating" gorm:"not null"`
	Comment     string    `json:"comment"`
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

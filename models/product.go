package models

import (
	"time"

	"gorm.io/gorm"
)

type Category string

const (
	CategoryMen   Category = "men"
	CategoryWomen Category = "women"
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       int            `gorm:"not null;check:price >= 0" json:"price"` // whole currency units
	Brand       string         `gorm:"index" json:"brand"`
	Category    Category       `gorm:"type:VARCHAR(10);index" json:"category"`
	Sizes       []ProductSize  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	Image       string         `gorm:"not null" json:"image"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Stock       int            `json:"stock"` // aggregate across sizes, maintained on writes
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductSize holds the remaining purchasable count for one size of a
// product. Size values are unique within a product.
type ProductSize struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	ProductID uint `gorm:"index;uniqueIndex:idx_product_size" json:"-"`
	Size      int  `gorm:"uniqueIndex:idx_product_size" json:"size"`
	Stock     int  `gorm:"check:stock >= 0" json:"stock"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProductID uint   `gorm:"index" json:"-"`
	URL       string `gorm:"not null" json:"url"`
}

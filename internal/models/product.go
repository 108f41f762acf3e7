package models

import "time"

type Product struct {
	ID          uint      `gorm:"column:product_id;primaryKey" json:"product_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CategoryID  uint      `gorm:"column:category_id;not null;index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price       float64   `gorm:"not null" json:"price"`
	ImgURL      string    `gorm:"column:img_url" json:"img_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

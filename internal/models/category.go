package models

import "time"

type Category struct {
	ID          uint      `gorm:"column:category_id;primaryKey" json:"category_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string { return "categories" }

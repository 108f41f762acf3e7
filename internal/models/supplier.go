package models

import "time"

type Supplier struct {
	ID          uint      `gorm:"column:supplier_id;primaryKey" json:"supplier_id"`
	Name        string    `gorm:"not null" json:"name"`
	ContactName string    `json:"contact_name"`
	Email       string    `gorm:"uniqueIndex" json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Supplier) TableName() string { return "suppliers" }

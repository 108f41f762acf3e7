package models

import "time"

type Customer struct {
	ID        uint      `gorm:"column:customer_id;primaryKey" json:"customer_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`

	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Customer) TableName() string { return "customers" }

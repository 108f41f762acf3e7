package models

type Inventory struct {
	ID           uint      `gorm:"column:inventory_id;primaryKey" json:"inventory_id"`
	ProductID    uint      `gorm:"column:product_id;uniqueIndex;not null" json:"product_id"`
	Product      *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	StockLevel   int       `gorm:"not null" json:"stock_level"`
	ReorderLevel int       `gorm:"not null" json:"reorder_level"`
	SupplierID   uint      `gorm:"column:supplier_id;not null" json:"supplier_id"`
	Supplier     *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

func (Inventory) TableName() string { return "inventory" }

// LowStock reports whether the row has fallen to or below its reorder level.
func (i Inventory) LowStock() bool { return i.StockLevel <= i.ReorderLevel }

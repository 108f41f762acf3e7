package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dertamme/milestone3/internal/db"
	"github.com/dertamme/milestone3/internal/httpx"
	"github.com/dertamme/milestone3/internal/models"
)

type CreateInventoryRequest struct {
	ProductID    uint `json:"product_id" binding:"required"`
	StockLevel   *int `json:"stock_level" binding:"required"`
	ReorderLevel *int `json:"reorder_level" binding:"required"`
	SupplierID   uint `json:"supplier_id" binding:"required"`
}

type UpdateInventoryRequest struct {
	StockLevel   *int `json:"stock_level"`
	ReorderLevel *int `json:"reorder_level"`
}

// GetInventory lists inventory rows, optionally filtered by a substring
// match on product id or product name.
func GetInventory(c *gin.Context) {
	search := c.Query("search")

	query := db.DB.Preload("Product").Preload("Supplier")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Joins("JOIN products ON products.product_id = inventory.product_id").
			Where("CAST(inventory.product_id AS TEXT) LIKE ? OR LOWER(products.name) LIKE LOWER(?)", pattern, pattern)
	}

	var items []models.Inventory
	if err := query.Find(&items).Error; err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while fetching inventory."))
		return
	}

	c.JSON(http.StatusOK, items)
}

func CreateInventory(c *gin.Context) {
	var req CreateInventoryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.JSON(c, httpx.Validation("%s", err.Error()))
		return
	}
	if *req.StockLevel < 0 {
		httpx.JSON(c, httpx.Validation("Invalid stock_level provided."))
		return
	}
	if *req.ReorderLevel < 0 {
		httpx.JSON(c, httpx.Validation("Invalid reorder_level provided."))
		return
	}

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		httpx.JSON(c, httpx.Validation("Invalid product_id."))
		return
	}
	var supplier models.Supplier
	if err := db.DB.First(&supplier, req.SupplierID).Error; err != nil {
		httpx.JSON(c, httpx.Validation("Invalid supplier_id."))
		return
	}

	// One row per product.
	var existing models.Inventory
	if err := db.DB.Where("product_id = ?", req.ProductID).First(&existing).Error; err == nil {
		httpx.JSON(c, httpx.Validation("Inventory for this product already exists."))
		return
	}

	item := models.Inventory{
		ProductID:    req.ProductID,
		StockLevel:   *req.StockLevel,
		ReorderLevel: *req.ReorderLevel,
		SupplierID:   req.SupplierID,
	}

	if err := db.DB.Create(&item).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Inventory created successfully.",
		"inventory": item,
	})
}

// UpdateInventory adjusts stock_level and/or reorder_level for the inventory
// row belonging to the product in the path.
func UpdateInventory(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var req UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.JSON(c, httpx.Validation("%s", err.Error()))
		return
	}
	if req.StockLevel == nil && req.ReorderLevel == nil {
		httpx.JSON(c, httpx.Validation("No input data provided."))
		return
	}

	var item models.Inventory
	if err := db.DB.Where("product_id = ?", productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Inventory item not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	if req.StockLevel != nil {
		if *req.StockLevel < 0 {
			httpx.JSON(c, httpx.Validation("Invalid stock_level provided."))
			return
		}
		item.StockLevel = *req.StockLevel
	}
	if req.ReorderLevel != nil {
		if *req.ReorderLevel < 0 {
			httpx.JSON(c, httpx.Validation("Invalid reorder_level provided."))
			return
		}
		item.ReorderLevel = *req.ReorderLevel
	}

	if err := db.DB.Save(&item).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Inventory updated successfully.",
		"inventory": item,
	})
}

// GetLowStockInventory lists rows at or below their reorder level.
func GetLowStockInventory(c *gin.Context) {
	var items []models.Inventory
	if err := db.DB.Preload("Product").Preload("Supplier").
		Where("stock_level <= reorder_level").Find(&items).Error; err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while fetching low stock inventory."))
		return
	}

	c.JSON(http.StatusOK, items)
}

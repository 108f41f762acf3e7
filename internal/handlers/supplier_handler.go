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

type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

func GetSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := db.DB.Find(&suppliers).Error; err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while fetching suppliers."))
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func GetSupplier(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var supplier models.Supplier
	if err := db.DB.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Supplier not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func CreateSupplier(c *gin.Context) {
	var req CreateSupplierRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.JSON(c, httpx.Validation("%s", err.Error()))
		return
	}

	supplier := models.Supplier{
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	}

	if err := db.DB.Create(&supplier).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Supplier created successfully",
		"supplier": supplier,
	})
}

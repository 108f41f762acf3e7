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

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := db.DB.Find(&customers).Error; err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while fetching customers."))
		return
	}
	c.JSON(http.StatusOK, customers)
}

func GetCustomer(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var customer models.Customer
	if err := db.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Customer not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, customer)
}

func CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.JSON(c, httpx.Validation("%s", err.Error()))
		return
	}

	customer := models.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := db.DB.Create(&customer).Error; err != nil {
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Customer created successfully",
		"customer": customer,
	})
}

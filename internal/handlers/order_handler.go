package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dertamme/milestone3/internal/db"
	"github.com/dertamme/milestone3/internal/httpx"
	"github.com/dertamme/milestone3/internal/models"
	"github.com/dertamme/milestone3/internal/notifier"
	"github.com/dertamme/milestone3/internal/utils"
)

type OrderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerID    uint             `json:"customer_id" binding:"required"`
	PaymentMethod string           `json:"payment_method" binding:"required"`
	OrderItems    []OrderItemInput `json:"order_items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status          string                   `json:"status"`
	ShippingDetails notifier.ShippingDetails `json:"shipping_details"`
}

// PlaceOrder runs the order transaction: it validates stock, decrements it,
// snapshots unit prices into order items and persists the order, all
// atomically. Isolation of concurrent checkouts is left to the database.
// The confirmation email and the advisory low-stock scan happen strictly
// after commit and never fail the order.
func PlaceOrder(gdb *gorm.DB, req CreateOrderRequest) (*models.Order, error) {
	var customer models.Customer
	if err := gdb.First(&customer, req.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.NotFound("Customer not found.")
		}
		return nil, httpx.Internal("An error occurred while creating the order.")
	}

	order := models.Order{
		CustomerID:    customer.ID,
		Status:        models.OrderStatusPending,
		TotalAmount:   0,
		PaymentMethod: req.PaymentMethod,
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		// Created first so line items can reference the order id.
		if err := tx.Create(&order).Error; err != nil {
			return httpx.Internal("An error occurred while creating the order.")
		}

		total := 0.0
		for _, item := range req.OrderItems {
			var inv models.Inventory
			if err := tx.Where("product_id = ?", item.ProductID).First(&inv).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return httpx.NotFound("Inventory item with product_id %d not found.", item.ProductID)
				}
				return httpx.Internal("An error occurred while creating the order.")
			}

			if inv.StockLevel < item.Quantity {
				return httpx.InsufficientStock("Insufficient stock for product_id %d.", item.ProductID)
			}

			inv.StockLevel -= item.Quantity
			if err := tx.Save(&inv).Error; err != nil {
				return httpx.Internal("An error occurred while creating the order.")
			}

			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return httpx.NotFound("Product with product_id %d not found.", item.ProductID)
				}
				return httpx.Internal("An error occurred while creating the order.")
			}

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return httpx.Internal("An error occurred while creating the order.")
			}

			order.Items = append(order.Items, orderItem)
			total += product.Price * float64(item.Quantity)
		}

		order.TotalAmount = total
		if err := tx.Model(&models.Order{}).Where("order_id = ?", order.ID).
			Update("total_amount", total).Error; err != nil {
			return httpx.Internal("An error occurred while creating the order.")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sendOrderConfirmation(customer, order)
	logLowStock(gdb)

	return &order, nil
}

func sendOrderConfirmation(customer models.Customer, order models.Order) {
	msg := notifier.OrderConfirmation{
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		OrderID:       order.ID,
		OrderDate:     order.OrderDate,
		TotalAmount:   order.TotalAmount,
	}
	for _, item := range order.Items {
		msg.Items = append(msg.Items, notifier.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := notifier.SendOrderConfirmation(context.Background(), msg); err != nil {
		log.Printf("Failed to send confirmation email for order %d to %s: %v", order.ID, customer.Email, err)
	}
}

// logLowStock is an advisory whole-table scan; it can race with concurrent
// orders and double-report.
func logLowStock(gdb *gorm.DB) {
	var items []models.Inventory
	if err := gdb.Find(&items).Error; err != nil {
		log.Printf("Low stock scan failed: %v", err)
		return
	}
	for _, item := range items {
		if item.LowStock() {
			log.Printf("Low stock alert for product_id %d: Stock Level = %d", item.ProductID, item.StockLevel)
		}
	}
}

func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.JSON(c, httpx.Validation("Missing required order fields."))
		return
	}

	order, err := PlaceOrder(db.DB, req)
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order created successfully.",
		"order_id": order.ID,
	})
}

// GetOrders lists orders newest first with pagination. A numeric search term
// matches order_id or customer_id exactly; a non-numeric term matches
// nothing.
func GetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	search := c.Query("search")

	query := db.DB.Model(&models.Order{})
	if search != "" {
		searchInt, err := strconv.Atoi(search)
		if err != nil {
			_, effPage, effPerPage, _ := utils.Paginate(page, perPage, 0)
			c.JSON(http.StatusOK, gin.H{
				"orders":       []models.Order{},
				"total":        0,
				"pages":        0,
				"current_page": effPage,
				"per_page":     effPerPage,
			})
			return
		}
		query = query.Where("order_id = ? OR customer_id = ?", searchInt, searchInt)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while fetching orders."))
		return
	}

	offset, effPage, effPerPage, pages := utils.Paginate(page, perPage, total)

	var orders []models.Order
	if err := query.Preload("Items").Order("created_at DESC").
		Offset(offset).Limit(effPerPage).Find(&orders).Error; err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while fetching orders."))
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":       orders,
		"total":        total,
		"pages":        pages,
		"current_page": effPage,
		"per_page":     effPerPage,
	})
}

func GetOrderDetails(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var order models.Order
	if err := db.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Order not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus sets the order status. A distinct status change sends
// exactly one shipping/status notification; setting the same status again
// sends none.
func UpdateOrderStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.JSON(c, httpx.Validation("No input data provided."))
		return
	}
	if req.Status == "" {
		httpx.JSON(c, httpx.Validation("Status field is required."))
		return
	}

	newStatus, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		httpx.JSON(c, httpx.Validation("Invalid order status: %s", req.Status))
		return
	}

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Order not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	previousStatus := order.Status
	order.Status = newStatus
	if err := db.DB.Save(&order).Error; err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while updating the order status."))
		return
	}

	if previousStatus != newStatus {
		var customer models.Customer
		if err := db.DB.First(&customer, order.CustomerID).Error; err != nil {
			httpx.JSON(c, httpx.NotFound("Associated customer not found."))
			return
		}

		msg := notifier.ShippingNotification{
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			OrderID:       order.ID,
			Status:        string(newStatus),
			Details:       req.ShippingDetails,
		}
		if err := notifier.SendShippingNotification(c.Request.Context(), msg); err != nil {
			log.Printf("Failed to send status notification for order %d to %s: %v", order.ID, customer.Email, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully."})
}

// DeleteOrder removes an order together with its line items.
func DeleteOrder(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httpx.JSON(c, err)
		return
	}

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSON(c, httpx.NotFound("Order not found."))
			return
		}
		httpx.JSON(c, httpx.Internal(err.Error()))
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		httpx.JSON(c, httpx.Internal("An error occurred while deleting the order."))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

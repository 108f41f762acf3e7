package store

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/dertamme/milestone3/internal/cart"
	"github.com/dertamme/milestone3/internal/db"
	"github.com/dertamme/milestone3/internal/handlers"
	"github.com/dertamme/milestone3/internal/models"
)

// CartRow is a cart line joined with its product for display.
type CartRow struct {
	ID       uint
	Name     string
	Image    string
	Price    float64
	Quantity int
	Total    float64
}

// catalogProducts loads the storefront catalog. Read failures degrade to an
// empty catalog instead of an error page.
func catalogProducts() []models.Product {
	var products []models.Product
	if err := db.DB.Preload("Category").Find(&products).Error; err != nil {
		log.Printf("Failed to load storefront catalog: %v", err)
		return nil
	}
	return products
}

func cartCount(c *gin.Context) int {
	return cart.Count(cart.Get(sessions.Default(c)))
}

// GET /store
func Index(c *gin.Context) {
	c.HTML(http.StatusOK, "store.html", gin.H{
		"Items":     catalogProducts(),
		"CartCount": cartCount(c),
	})
}

// GET /product/:name
func ProductPage(c *gin.Context) {
	name := c.Param("name")

	var product models.Product
	if err := db.DB.Preload("Category").
		Where("LOWER(name) = ?", strings.ToLower(name)).First(&product).Error; err != nil {
		c.Redirect(http.StatusFound, "/store")
		return
	}

	var sameCategory []models.Product
	if err := db.DB.Where("category_id = ?", product.CategoryID).Find(&sameCategory).Error; err != nil {
		sameCategory = nil
	}

	c.HTML(http.StatusOK, "product.html", gin.H{
		"Product":              product,
		"SameCategoryProducts": sameCategory,
		"CartCount":            cartCount(c),
	})
}

// GET /cart
func CartPage(c *gin.Context) {
	items := cart.Get(sessions.Default(c))

	var rows []CartRow
	totalPrice := 0.0

	if len(items) > 0 {
		ids := make([]uint, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}

		var products []models.Product
		if err := db.DB.Where("product_id IN ?", ids).Find(&products).Error; err != nil {
			log.Printf("Failed to load cart products: %v", err)
			products = nil
		}

		byID := make(map[uint]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		for _, item := range items {
			p, ok := byID[item.ProductID]
			if !ok {
				continue
			}
			lineTotal := p.Price * float64(item.Quantity)
			totalPrice += lineTotal
			rows = append(rows, CartRow{
				ID:       p.ID,
				Name:     p.Name,
				Image:    p.ImgURL,
				Price:    p.Price,
				Quantity: item.Quantity,
				Total:    lineTotal,
			})
		}
	}

	c.HTML(http.StatusOK, "cart.html", gin.H{
		"Products":   rows,
		"TotalPrice": totalPrice,
		"CartCount":  cart.Count(items),
	})
}

// GET /checkout
func CheckoutPage(c *gin.Context) {
	items := cart.Get(sessions.Default(c))

	totalPrice := 0.0
	if len(items) > 0 {
		ids := make([]uint, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}

		var products []models.Product
		if err := db.DB.Where("product_id IN ?", ids).Find(&products).Error; err == nil {
			byID := make(map[uint]models.Product, len(products))
			for _, p := range products {
				byID[p.ID] = p
			}
			for _, item := range items {
				if p, ok := byID[item.ProductID]; ok {
					totalPrice += p.Price * float64(item.Quantity)
				}
			}
		}
	}

	c.HTML(http.StatusOK, "checkout.html", gin.H{
		"TotalPrice": totalPrice,
		"CartCount":  cart.Count(items),
	})
}

// POST /submit_checkout
//
// Resolves (or creates) the customer by email and runs the same order
// transaction as the JSON API. The cart is destroyed only on success; any
// failure sends the visitor back to the cart page.
func SubmitCheckout(c *gin.Context) {
	sess := sessions.Default(c)
	items := cart.Get(sess)
	if len(items) == 0 {
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	name := c.PostForm("name")
	email := c.PostForm("email")
	if name == "" || email == "" {
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	var customer models.Customer
	if err := db.DB.Where("email = ?", email).First(&customer).Error; err != nil {
		customer = models.Customer{Name: name, Email: email}
		if err := db.DB.Create(&customer).Error; err != nil {
			log.Printf("Error processing the checkout: %v", err)
			c.Redirect(http.StatusFound, "/cart")
			return
		}
	}

	req := handlers.CreateOrderRequest{
		CustomerID:    customer.ID,
		PaymentMethod: "Credit Card",
	}
	for _, item := range items {
		req.OrderItems = append(req.OrderItems, handlers.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := handlers.PlaceOrder(db.DB, req)
	if err != nil {
		log.Printf("Error processing the checkout: %v", err)
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	if err := cart.Clear(sess); err != nil {
		log.Printf("Failed to clear cart after order %d: %v", order.ID, err)
	}

	c.Redirect(http.StatusFound, "/thank_you")
}

// GET /thank_you
func ThankYou(c *gin.Context) {
	c.HTML(http.StatusOK, "thank_you.html", gin.H{
		"CartCount": cartCount(c),
	})
}

func productIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// GET /add_to_cart/:id
func AddToCart(c *gin.Context) {
	sess := sessions.Default(c)
	if id, ok := productIDParam(c); ok {
		if err := cart.Save(sess, cart.Add(cart.Get(sess), id)); err != nil {
			log.Printf("Failed to save cart: %v", err)
		}
	}
	c.Redirect(http.StatusFound, "/store")
}

// GET /remove_from_cart/:id
func RemoveFromCart(c *gin.Context) {
	sess := sessions.Default(c)
	if id, ok := productIDParam(c); ok {
		if err := cart.Save(sess, cart.Remove(cart.Get(sess), id)); err != nil {
			log.Printf("Failed to save cart: %v", err)
		}
	}
	c.Redirect(http.StatusFound, "/cart")
}

// GET /increase_quantity/:id
func IncreaseQuantity(c *gin.Context) {
	sess := sessions.Default(c)
	if id, ok := productIDParam(c); ok {
		if err := cart.Save(sess, cart.Increase(cart.Get(sess), id)); err != nil {
			log.Printf("Failed to save cart: %v", err)
		}
	}
	c.Redirect(http.StatusFound, "/cart")
}

// GET /decrease_quantity/:id
func DecreaseQuantity(c *gin.Context) {
	sess := sessions.Default(c)
	if id, ok := productIDParam(c); ok {
		if err := cart.Save(sess, cart.Decrease(cart.Get(sess), id)); err != nil {
			log.Printf("Failed to save cart: %v", err)
		}
	}
	c.Redirect(http.StatusFound, "/cart")
}

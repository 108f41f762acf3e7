package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dertamme/milestone3/configs"
	"github.com/dertamme/milestone3/internal/db"
	"github.com/dertamme/milestone3/internal/handlers"
	"github.com/dertamme/milestone3/internal/storage"
	"github.com/dertamme/milestone3/internal/store"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db.Init()

	if uploader, err := storage.NewS3Uploader(context.Background()); err != nil {
		log.Printf("Image storage disabled: %v", err)
	} else {
		handlers.ImageUploader = uploader
	}

	serverCfg := config.LoadServerConfig()

	r := gin.Default()
	r.Use(cors.Default())

	// ── session store (cart) ──
	sessionStore := cookie.NewStore([]byte(serverCfg.SessionSecret))
	r.Use(sessions.Sessions("storesess", sessionStore))

	r.LoadHTMLGlob("templates/*.html")

	// ── health ──
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// ── admin JSON API ──
	api := r.Group("/api")
	{
		api.GET("/products", handlers.GetProducts)
		api.GET("/products/:id", handlers.GetProduct)
		api.POST("/products", handlers.CreateProduct)
		api.PUT("/products/:id", handlers.UpdateProduct)
		api.DELETE("/products/:id", handlers.DeleteProduct)
		api.POST("/products/:id/image", handlers.UploadProductImage)

		api.GET("/categories", handlers.GetCategories)
		api.GET("/categories/:id", handlers.GetCategory)
		api.POST("/categories", handlers.CreateCategory)
		api.PUT("/categories/:id", handlers.UpdateCategory)
		api.DELETE("/categories/:id", handlers.DeleteCategory)

		api.GET("/suppliers", handlers.GetSuppliers)
		api.GET("/suppliers/:id", handlers.GetSupplier)
		api.POST("/suppliers", handlers.CreateSupplier)

		api.GET("/customers", handlers.GetCustomers)
		api.GET("/customers/:id", handlers.GetCustomer)
		api.POST("/customers", handlers.CreateCustomer)

		api.GET("/inventory", handlers.GetInventory)
		api.POST("/inventory", handlers.CreateInventory)
		api.PUT("/inventory/:id", handlers.UpdateInventory)
		api.GET("/inventory/low_stock", handlers.GetLowStockInventory)

		api.POST("/orders", handlers.CreateOrder)
		api.GET("/orders", handlers.GetOrders)
		api.GET("/orders/:id", handlers.GetOrderDetails)
		api.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
		api.DELETE("/orders/:id", handlers.DeleteOrder)
	}

	// ── customer-facing storefront ──
	r.GET("/store", store.Index)
	r.GET("/product/:name", store.ProductPage)
	r.GET("/cart", store.CartPage)
	r.GET("/checkout", store.CheckoutPage)
	r.POST("/submit_checkout", store.SubmitCheckout)
	r.GET("/thank_you", store.ThankYou)
	r.GET("/add_to_cart/:id", store.AddToCart)
	r.GET("/remove_from_cart/:id", store.RemoveFromCart)
	r.GET("/increase_quantity/:id", store.IncreaseQuantity)
	r.GET("/decrease_quantity/:id", store.DecreaseQuantity)

	if err := r.Run(serverCfg.Addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
